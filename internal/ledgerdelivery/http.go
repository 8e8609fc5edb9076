// Package ledgerdelivery manages delivery layer of the ledger balance views.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
	"github.com/splitbook/splitbook/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Balance(ctx context.Context) (domain.BalanceView, error)
	Entries(ctx context.Context, refID string) ([]domain.LedgerEntry, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

func writeServiceErr(gctx *gin.Context, err error) {
	var te *ledgerapi.TransportError
	if errors.As(err, &te) {
		gctx.JSON(http.StatusBadGateway, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type dataBalance struct {
	Balance domain.BalanceView `json:"balance"`
}
type responseBalance struct {
	Data dataBalance `json:"data,omitempty"`
}

// Balance handles http request to read the interpreted outstanding balance.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	balance, err := h.service.Balance(ctx)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseBalance{Data: dataBalance{balance}})
}

type entriesRequest struct {
	RefID string `uri:"refId" binding:"required"`
}

type dataEntries struct {
	Entries []domain.LedgerEntry `json:"entries"`
}
type responseEntries struct {
	Data dataEntries `json:"data,omitempty"`
}

// Entries handles http request to list the raw ledger entries behind one
// expense or settlement record.
func (h *Handler) Entries(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req entriesRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	entries, err := h.service.Entries(ctx, req.RefID)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseEntries{Data: dataEntries{entries}})
}
