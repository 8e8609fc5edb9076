// Package expenserepo manages repository layer of expenses.
package expenserepo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
)

// dateLayout is the calendar-day format the remote service uses for the
// expense date field. LastUpdated is a full RFC3339 timestamp.
const dateLayout = "2006-01-02"

const pageLimit = 200

// RepoHTTP facilitates expense repository layer logic against the remote
// ledger service.
type RepoHTTP struct {
	client *ledgerapi.Client
}

// NewRepoHTTP returns expense RepoHTTP.
func NewRepoHTTP(client *ledgerapi.Client) *RepoHTTP {
	return &RepoHTTP{
		client: client,
	}
}

// expensePayload is the wire shape of one expense record.
type expensePayload struct {
	ID          string `json:"id"`
	Payer       string `json:"payer"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Memo        string `json:"memo,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

func (p expensePayload) toDomain() (domain.Expense, error) {
	e := domain.Expense{
		ID:        p.ID,
		Payer:     domain.Party(p.Payer),
		Amount:    p.Amount,
		Category:  p.Category,
		Memo:      p.Memo,
		Deleted:   p.Deleted,
		CreatedBy: domain.Party(p.CreatedBy),
	}

	date, err := time.Parse(dateLayout, p.Date)
	if err != nil {
		return e, err
	}

	e.Date = date

	if p.LastUpdated != "" {
		updated, err := time.Parse(time.RFC3339, p.LastUpdated)
		if err != nil {
			return e, err
		}

		e.LastUpdated = updated
	}

	return e, nil
}

// List fetches the full expense history, following the cursor until the
// service stops returning one.
func (r *RepoHTTP) List(ctx context.Context, includeDeleted bool) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	var all []domain.Expense

	cursor := ""

	for {
		query := url.Values{"limit": {strconv.Itoa(pageLimit)}}
		if includeDeleted {
			query.Set("includeDeleted", "1")
		}

		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Items      []expensePayload `json:"items"`
			NextCursor string           `json:"nextCursor"`
		}

		if err := r.client.Get(ctx, "/expenses", query, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			e, err := item.toDomain()
			if err != nil {
				l.Error().Err(err).Str("expense_id", item.ID).Send()
				return nil, errorspkg.ErrInternal
			}

			all = append(all, e)
		}

		if page.NextCursor == "" {
			return all, nil
		}

		cursor = page.NextCursor
	}
}

// Create submits a new expense. The idempotency key is derived from the
// business fields so a retried submission cannot create a duplicate.
func (r *RepoHTTP) Create(ctx context.Context, arg domain.CreateExpenseParams, createdBy domain.Party) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	body := expensePayload{
		Payer:     string(arg.Payer),
		Amount:    arg.Amount,
		Date:      arg.Date.Format(dateLayout),
		Category:  arg.Category,
		Memo:      arg.Memo,
		CreatedBy: string(createdBy),
	}

	key := ledgerapi.IdempotencyKey(
		string(arg.Payer),
		arg.Date.Format(dateLayout),
		strconv.FormatInt(arg.Amount, 10),
	)

	var created expensePayload

	if err := r.client.Post(ctx, "/expenses", body, &created, key); err != nil {
		return domain.Expense{}, err
	}

	e, err := created.toDomain()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Expense{}, errorspkg.ErrInternal
	}

	return e, nil
}

// Update replaces amount, date, category and memo of an existing expense.
func (r *RepoHTTP) Update(ctx context.Context, id string, arg domain.CreateExpenseParams) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	body := expensePayload{
		Payer:    string(arg.Payer),
		Amount:   arg.Amount,
		Date:     arg.Date.Format(dateLayout),
		Category: arg.Category,
		Memo:     arg.Memo,
	}

	var updated expensePayload

	if err := r.client.Put(ctx, "/expenses/"+url.PathEscape(id), body, &updated); err != nil {
		return domain.Expense{}, notFoundAs(err, domain.ErrExpenseNotFound)
	}

	e, err := updated.toDomain()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Expense{}, errorspkg.ErrInternal
	}

	return e, nil
}

// Delete marks an expense as logically deleted. The record itself is never
// removed from the remote ledger.
func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/expenses/"+url.PathEscape(id)); err != nil {
		return notFoundAs(err, domain.ErrExpenseNotFound)
	}

	return nil
}

// notFoundAs converts a remote 404 into the given domain error and leaves
// every other failure untouched.
func notFoundAs(err error, domainErr error) error {
	var terr *ledgerapi.TransportError
	if errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound {
		return domainErr
	}

	return err
}
