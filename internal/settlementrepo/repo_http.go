// Package settlementrepo manages repository layer of settlements.
package settlementrepo

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

const pageLimit = 200

// RepoHTTP facilitates settlement repository layer logic against the remote
// ledger service.
type RepoHTTP struct {
	client *ledgerapi.Client
}

// NewRepoHTTP returns settlement RepoHTTP.
func NewRepoHTTP(client *ledgerapi.Client) *RepoHTTP {
	return &RepoHTTP{
		client: client,
	}
}

// settlementPayload is the wire shape of one settlement record.
type settlementPayload struct {
	ID            string `json:"id"`
	Applicant     string `json:"applicant"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	DirectionText string `json:"directionText"`
	Amount        int64  `json:"amount"`
}

func (p settlementPayload) toDomain() (domain.Settlement, error) {
	s := domain.Settlement{
		ID:            p.ID,
		Applicant:     domain.Party(p.Applicant),
		Status:        domain.SettlementStatus(p.Status),
		DirectionText: p.DirectionText,
		Amount:        p.Amount,
	}

	date, err := time.Parse(time.RFC3339, p.Date)
	if err != nil {
		return s, err
	}

	s.Date = date

	return s, nil
}

// List fetches the full settlement history, following the cursor until the
// service stops returning one.
func (r *RepoHTTP) List(ctx context.Context) ([]domain.Settlement, error) {
	l := zerolog.Ctx(ctx)

	var all []domain.Settlement

	cursor := ""

	for {
		query := url.Values{"limit": {strconv.Itoa(pageLimit)}}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Items      []settlementPayload `json:"items"`
			NextCursor string              `json:"nextCursor"`
		}

		if err := r.client.Get(ctx, "/settlements", query, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			s, err := item.toDomain()
			if err != nil {
				l.Error().Err(err).Str("settlement_id", item.ID).Send()
				return nil, errorspkg.ErrInternal
			}

			all = append(all, s)
		}

		if page.NextCursor == "" {
			return all, nil
		}

		cursor = page.NextCursor
	}
}

// Request opens a new pending settlement. The idempotency key is derived
// from the applicant and the issuing moment, so a client-side retry cannot
// open a second pending settlement. A remote-reported conflict maps to
// domain.ErrSettlementPending.
func (r *RepoHTTP) Request(ctx context.Context, arg domain.RequestSettlementParams) (domain.Settlement, error) {
	l := zerolog.Ctx(ctx)

	body := settlementPayload{
		Applicant:     string(arg.Applicant),
		Date:          arg.RequestedAt.Format(time.RFC3339),
		DirectionText: arg.DirectionText,
		Amount:        arg.Amount,
	}

	key := ledgerapi.IdempotencyKey(
		string(arg.Applicant),
		arg.RequestedAt.Truncate(time.Second).Format(time.RFC3339),
	)

	var created settlementPayload

	if err := r.client.Post(ctx, "/settlements", body, &created, key); err != nil {
		if errors.Is(err, ledgerapi.ErrConflict) {
			return domain.Settlement{}, domain.ErrSettlementPending
		}

		return domain.Settlement{}, err
	}

	s, err := created.toDomain()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Settlement{}, errorspkg.ErrInternal
	}

	return s, nil
}

// Approve closes a pending settlement as approved.
func (r *RepoHTTP) Approve(ctx context.Context, id string) (domain.Settlement, error) {
	return r.decide(ctx, id, "approve")
}

// Reject closes a pending settlement as rejected.
func (r *RepoHTTP) Reject(ctx context.Context, id string) (domain.Settlement, error) {
	return r.decide(ctx, id, "reject")
}

func (r *RepoHTTP) decide(ctx context.Context, id, action string) (domain.Settlement, error) {
	l := zerolog.Ctx(ctx)

	var decided settlementPayload

	err := r.client.Post(ctx, "/settlements/"+url.PathEscape(id)+"/"+action, nil, &decided, "")
	if err != nil {
		if errors.Is(err, ledgerapi.ErrConflict) {
			return domain.Settlement{}, domain.ErrSettlementNotPending
		}

		var terr *ledgerapi.TransportError
		if errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound {
			return domain.Settlement{}, domain.ErrSettlementNotFound
		}

		return domain.Settlement{}, err
	}

	s, err := decided.toDomain()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Settlement{}, errorspkg.ErrInternal
	}

	return s, nil
}
