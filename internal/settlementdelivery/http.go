// Package settlementdelivery manages delivery layer of settlements.
package settlementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/internal/middleware"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
	"github.com/splitbook/splitbook/pkg/web"
)

// Service provides service layer interface needed by settlement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package settlementdelivery
type Service interface {
	Request(ctx context.Context, sess domain.Session) (domain.Settlement, error)
	Approve(ctx context.Context, id string) (domain.Settlement, error)
	Reject(ctx context.Context, id string) (domain.Settlement, error)
	History(ctx context.Context) ([]domain.Settlement, error)
}

// Handler facilitates settlement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns settlement handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type data struct {
	Settlement domain.Settlement `json:"settlement"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

func writeServiceErr(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrSettlementPending, domain.ErrSettlementNotPending:
		gctx.JSON(http.StatusConflict, web.Error(err))
		return
	case domain.ErrSettlementNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	var te *ledgerapi.TransportError
	if errors.As(err, &te) {
		gctx.JSON(http.StatusBadGateway, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

// Request handles http request to open a settlement for the current balance.
func (h *Handler) Request(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	sess := gctx.MustGet(middleware.SessionKey).(domain.Session)

	settlement, err := h.service.Request(ctx, sess)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{settlement}})
}

type idRequest struct {
	ID string `uri:"id" binding:"required"`
}

func (h *Handler) decide(gctx *gin.Context, action func(context.Context, string) (domain.Settlement, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
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

	settlement, err := action(ctx, req.ID)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{settlement}})
}

// Approve handles http request to approve a pending settlement.
func (h *Handler) Approve(gctx *gin.Context) {
	h.decide(gctx, h.service.Approve)
}

// Reject handles http request to reject a pending settlement.
func (h *Handler) Reject(gctx *gin.Context) {
	h.decide(gctx, h.service.Reject)
}

type dataSettlements struct {
	Settlements []domain.Settlement `json:"settlements"`
}
type responseSettlements struct {
	Data dataSettlements `json:"data,omitempty"`
}

// List handles http request to list the settlement history, newest first.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	settlements, err := h.service.History(ctx)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseSettlements{Data: dataSettlements{settlements}})
}
