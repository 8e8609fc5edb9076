package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/web"
)

// SessionKey is the gin context key the acting session is stored under.
const SessionKey = "session"

// ActingPartyHeader names the request header carrying the acting party.
const ActingPartyHeader = "X-Acting-Party"

// ErrUnknownParty indicates an acting party outside the two configured parties.
var ErrUnknownParty = errors.New("acting party is not one of the two parties")

// SessionMiddleware resolves the acting party for the request and stores a
// domain.Session in the gin context. An absent header falls back to the first
// party, an unknown one rejects the request.
func SessionMiddleware(parties domain.Parties) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		party := domain.Party(gctx.GetHeader(ActingPartyHeader))
		if party == "" {
			party = parties.A
		}

		if !parties.Contains(party) {
			l.Info().Err(ErrUnknownParty).Str("party", string(party)).Send()
			gctx.AbortWithStatusJSON(http.StatusBadRequest, web.Error(ErrUnknownParty))

			return
		}

		gctx.Set(SessionKey, domain.Session{ActingParty: party})
		gctx.Next()
	}
}
