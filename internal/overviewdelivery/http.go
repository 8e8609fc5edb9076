// Package overviewdelivery manages delivery layer of the composite overview.
package overviewdelivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
	"github.com/splitbook/splitbook/pkg/web"
)

// GenerationHeader names the response header echoing the render generation.
const GenerationHeader = "X-View-Generation"

// Service provides service layer interface needed by overview delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package overviewdelivery
type Service interface {
	Render(ctx context.Context) (domain.Overview, error)
}

// Handler facilitates overview delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns overview handler.
func NewHandler(os Service) *Handler {
	return &Handler{service: os}
}

type data struct {
	Overview domain.Overview `json:"overview"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to render the composite overview.
//
// A render overtaken by a newer one answers 409 so the client refetches
// instead of drawing a stale snapshot.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	overview, err := h.service.Render(ctx)
	if err != nil {
		l.Info().Err(err).Send()

		if err == errorspkg.ErrStaleView {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		var te *ledgerapi.TransportError
		if errors.As(err, &te) {
			gctx.JSON(http.StatusBadGateway, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Header(GenerationHeader, strconv.FormatInt(overview.Generation, 10))
	gctx.JSON(http.StatusOK, response{Data: data{overview}})
}
