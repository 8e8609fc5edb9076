// Package ledgerservice manages business logic layer of the ledger balance.
package ledgerservice

import (
	"context"
	"fmt"

	"github.com/splitbook/splitbook/internal/domain"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Summary(ctx context.Context) (domain.LedgerSummary, error)
	Entries(ctx context.Context, refID string) ([]domain.LedgerEntry, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo    Repo
	parties domain.Parties
}

// New returns ledger service struct to manage ledger read-side logic.
func New(repo Repo, parties domain.Parties) *Service {
	return &Service{
		repo:    repo,
		parties: parties,
	}
}

// Balance fetches the authoritative summary and interprets it for display.
func (s *Service) Balance(ctx context.Context) (domain.BalanceView, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return domain.BalanceView{}, err
	}

	return InterpretSummary(summary, s.parties), nil
}

// Entries returns the audit trail for one expense or settlement.
func (s *Service) Entries(ctx context.Context, refID string) ([]domain.LedgerEntry, error) {
	return s.repo.Entries(ctx, refID)
}

// InterpretSummary derives the display view of the authoritative balance.
// Positive means party B owes party A, negative the reverse. This is pure
// interpretation, the balance itself is never recomputed from expenses.
func InterpretSummary(summary domain.LedgerSummary, parties domain.Parties) domain.BalanceView {
	switch {
	case summary.BalanceA > 0:
		return domain.BalanceView{
			DirectionText: fmt.Sprintf("%sが%sに支払う", parties.B, parties.A),
			Amount:        summary.BalanceA,
		}
	case summary.BalanceA < 0:
		return domain.BalanceView{
			DirectionText: fmt.Sprintf("%sが%sに支払う", parties.A, parties.B),
			Amount:        -summary.BalanceA,
		}
	}

	return domain.BalanceView{
		DirectionText: "差額はありません",
		Settled:       true,
	}
}

// PreviewSplit computes the client-side equal split of total between the two
// parties, assigning the remainder to the payer. The remote service
// recomputes the split at save time; this preview matches it exactly.
// Non-positive totals clamp to zero.
func (s *Service) PreviewSplit(total int64, payer domain.Party) domain.SplitPreview {
	if total < 0 {
		total = 0
	}

	otherShare := total / 2

	return domain.SplitPreview{
		Payer:      payer,
		PayerShare: total - otherShare,
		OtherShare: otherShare,
	}
}
