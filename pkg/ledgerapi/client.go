// Package ledgerapi provides the HTTP client for the remote ledger service.
//
// The remote service owns all expense and settlement records; this package
// only moves requests and responses across the wire. It normalizes every
// failure into a TransportError and never retries, callers decide whether to
// re-invoke.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrConflict marks a remote-reported state conflict, e.g. requesting a
// settlement while one is already pending.
var ErrConflict = errors.New("conflict")

// TransportError describes a non-success response or a connectivity failure.
type TransportError struct {
	Op         string
	StatusCode int // zero when the request never reached the service
	Message    string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

// Unwrap exposes ErrConflict for remote 409 responses so that callers can
// map them onto domain conflicts with errors.Is.
func (e *TransportError) Unwrap() error {
	if e.StatusCode == http.StatusConflict {
		return ErrConflict
	}

	return nil
}

// Client provides access to the remote ledger service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, idempotencyKey string) error {
	l := zerolog.Ctx(ctx)
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			l.Error().Err(err).Send()
			return &TransportError{Op: op, Message: err.Error()}
		}

		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		l.Error().Err(err).Send()
		return &TransportError{Op: op, Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")

	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).Str("url", u).Send()
		return &TransportError{Op: op, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(res.Body)

		terr := &TransportError{
			Op:         op,
			StatusCode: res.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
		if terr.Message == "" {
			terr.Message = res.Status
		}

		l.Error().Int("status", res.StatusCode).Str("url", u).Msg(terr.Message)

		return terr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		l.Error().Err(err).Str("url", u).Send()
		return &TransportError{Op: op, Message: err.Error()}
	}

	return nil
}

// Get issues a read-only request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, "")
}

// Post issues a mutating request. An empty idempotencyKey omits the header.
func (c *Client) Post(ctx context.Context, path string, body, out any, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, idempotencyKey)
}

// Put issues an in-place update request.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, "")
}

// Delete issues a delete request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, "")
}
