// Package ledgerrepo manages repository layer of the authoritative ledger.
package ledgerrepo

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/errorspkg"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
)

const pageLimit = 200

// RepoHTTP facilitates ledger repository layer logic against the remote
// ledger service.
type RepoHTTP struct {
	client *ledgerapi.Client
}

// NewRepoHTTP returns ledger RepoHTTP.
func NewRepoHTTP(client *ledgerapi.Client) *RepoHTTP {
	return &RepoHTTP{
		client: client,
	}
}

// Summary fetches the authoritative signed balance. The sign convention is
// the remote service's contract; nothing here recomputes it from expenses.
func (r *RepoHTTP) Summary(ctx context.Context) (domain.LedgerSummary, error) {
	var summary domain.LedgerSummary

	if err := r.client.Get(ctx, "/balance", nil, &summary); err != nil {
		return domain.LedgerSummary{}, err
	}

	return summary, nil
}

// entryPayload is the wire shape of one audit-trail record.
type entryPayload struct {
	ID       string `json:"id"`
	RefID    string `json:"refId"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
	Recorded string `json:"recorded"`
}

func (p entryPayload) toDomain() (domain.LedgerEntry, error) {
	e := domain.LedgerEntry{
		ID:     p.ID,
		RefID:  p.RefID,
		Kind:   p.Kind,
		Amount: p.Amount,
	}

	recorded, err := time.Parse(time.RFC3339, p.Recorded)
	if err != nil {
		return e, err
	}

	e.Recorded = recorded

	return e, nil
}

// Entries fetches the full audit trail for one expense or settlement,
// following the cursor until the service stops returning one.
func (r *RepoHTTP) Entries(ctx context.Context, refID string) ([]domain.LedgerEntry, error) {
	l := zerolog.Ctx(ctx)

	var all []domain.LedgerEntry

	cursor := ""

	for {
		query := url.Values{
			"refId": {refID},
			"limit": {strconv.Itoa(pageLimit)},
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Items      []entryPayload `json:"items"`
			NextCursor string         `json:"nextCursor"`
		}

		if err := r.client.Get(ctx, "/ledger/entries", query, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			e, err := item.toDomain()
			if err != nil {
				l.Error().Err(err).Str("entry_id", item.ID).Send()
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
