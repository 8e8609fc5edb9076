// Package expensedelivery manages delivery layer of expenses.
package expensedelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/internal/middleware"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
	"github.com/splitbook/splitbook/pkg/web"
)

const dateLayout = "2006-01-02"

// Service provides service layer interface needed by expense delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package expensedelivery
type Service interface {
	Create(ctx context.Context, sess domain.Session, arg domain.CreateExpenseParams) (domain.Expense, error)
	Update(ctx context.Context, sess domain.Session, id string, arg domain.CreateExpenseParams) (domain.Expense, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Expense, error)
	ListOutstanding(ctx context.Context) ([]domain.Expense, error)
}

// Handler facilitates expense delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns expense handler.
func NewHandler(es Service) *Handler {
	return &Handler{service: es}
}

type data struct {
	Expense domain.Expense `json:"expense"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type expenseRequest struct {
	Payer    string `json:"payer" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Category string `json:"category" binding:"required"`
	Memo     string `json:"memo"`
}

func (r expenseRequest) params() domain.CreateExpenseParams {
	date, _ := time.Parse(dateLayout, r.Date)

	return domain.CreateExpenseParams{
		Payer:    domain.Party(r.Payer),
		Amount:   r.Amount,
		Date:     date,
		Category: r.Category,
		Memo:     r.Memo,
	}
}

func bindingErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return ""
}

func writeServiceErr(gctx *gin.Context, err error) {
	switch err {
	case
		domain.ErrInvalidAmount,
		domain.ErrMissingDate,
		domain.ErrMissingCategory,
		domain.ErrInvalidPayer:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	case domain.ErrExpenseNotFound:
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

// Create handles http request to record a new expense.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req expenseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrMsg(err)})

		return
	}

	sess := gctx.MustGet(middleware.SessionKey).(domain.Session)

	created, err := h.service.Create(ctx, sess, req.params())
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{created}})
}

type idRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to fetch one expense.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrMsg(err)})

		return
	}

	expense, err := h.service.Get(ctx, req.ID)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{expense}})
}

// Update handles http request to replace the editable fields of an expense.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrMsg(err)})

		return
	}

	var req expenseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrMsg(err)})

		return
	}

	sess := gctx.MustGet(middleware.SessionKey).(domain.Session)
	sess.EditingExpenseID = uri.ID

	updated, err := h.service.Update(ctx, sess, uri.ID, req.params())
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{updated}})
}

// Delete handles http request to logically delete an expense.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrMsg(err)})

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}

type dataExpenses struct {
	Expenses []domain.Expense `json:"expenses"`
}
type responseExpenses struct {
	Data dataExpenses `json:"data,omitempty"`
}

// List handles http request to list the outstanding expenses.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	expenses, err := h.service.ListOutstanding(ctx)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceErr(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseExpenses{Data: dataExpenses{expenses}})
}
