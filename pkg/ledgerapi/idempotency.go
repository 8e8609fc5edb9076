package ledgerapi

import (
	"encoding/base64"
	"strings"
)

// IdempotencyKey derives a stable header-safe token from business fields.
//
// The same fields always produce the same token, so a retried submission
// collapses into the original effect on the remote service. Base64URL keeps
// multibyte party names and categories ASCII-clean on the wire.
func IdempotencyKey(parts ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, "|")))
}
