// Package settlementservice manages business logic layer of settlements.
package settlementservice

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitbook/splitbook/internal/domain"
)

// Repo provides data access layer interface needed by settlement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package settlementservice
type Repo interface {
	List(ctx context.Context) ([]domain.Settlement, error)
	Request(ctx context.Context, arg domain.RequestSettlementParams) (domain.Settlement, error)
	Approve(ctx context.Context, id string) (domain.Settlement, error)
	Reject(ctx context.Context, id string) (domain.Settlement, error)
}

// Balancer provides the interpreted ledger balance the settlement request is
// derived from.
type Balancer interface {
	Balance(ctx context.Context) (domain.BalanceView, error)
}

// Service facilitates settlement service layer logic.
type Service struct {
	repo   Repo
	ledger Balancer
	now    func() time.Time
}

// New returns settlement service struct to manage settlement business logic.
func New(repo Repo, ledger Balancer) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		now:    time.Now,
	}
}

// FindPending scans the full settlement history for the single open request.
//
// The remote service enforces the single-flight constraint but exposes no
// dedicated current-pending query, so the scan over the paginated history is
// the only way to find it.
func (s *Service) FindPending(ctx context.Context) (domain.Settlement, bool, error) {
	settlements, err := s.repo.List(ctx)
	if err != nil {
		return domain.Settlement{}, false, err
	}

	for _, st := range settlements {
		if st.Status == domain.SettlementStatusPending {
			return st, true, nil
		}
	}

	return domain.Settlement{}, false, nil
}

// Request opens a settlement request for the current outstanding balance on
// behalf of the acting party.
//
// An already pending settlement surfaces as domain.ErrSettlementPending,
// whether caught by the pre-check scan or reported by the remote service.
func (s *Service) Request(ctx context.Context, sess domain.Session) (domain.Settlement, error) {
	l := zerolog.Ctx(ctx)

	_, pending, err := s.FindPending(ctx)
	if err != nil {
		return domain.Settlement{}, err
	}

	if pending {
		l.Info().Err(domain.ErrSettlementPending).Send()
		return domain.Settlement{}, domain.ErrSettlementPending
	}

	balance, err := s.ledger.Balance(ctx)
	if err != nil {
		return domain.Settlement{}, err
	}

	arg := domain.RequestSettlementParams{
		Applicant:     sess.ActingParty,
		DirectionText: balance.DirectionText,
		Amount:        balance.Amount,
		RequestedAt:   s.now().UTC(),
	}

	return s.repo.Request(ctx, arg)
}

// Approve closes the identified settlement as approved, which advances the
// visibility cutoff. An absent or no longer pending settlement is a no-op:
// the current record is returned unchanged.
func (s *Service) Approve(ctx context.Context, id string) (domain.Settlement, error) {
	return s.decide(ctx, id, s.repo.Approve)
}

// Reject closes the identified settlement as rejected. An absent or no
// longer pending settlement is a no-op.
func (s *Service) Reject(ctx context.Context, id string) (domain.Settlement, error) {
	return s.decide(ctx, id, s.repo.Reject)
}

func (s *Service) decide(ctx context.Context, id string, action func(context.Context, string) (domain.Settlement, error)) (domain.Settlement, error) {
	l := zerolog.Ctx(ctx)

	settlements, err := s.repo.List(ctx)
	if err != nil {
		return domain.Settlement{}, err
	}

	for _, st := range settlements {
		if st.ID != id {
			continue
		}

		if st.Status != domain.SettlementStatusPending {
			// Already decided, the terminal state stands.
			l.Info().Str("settlement_id", id).Str("status", string(st.Status)).Msg("decision skipped")
			return st, nil
		}

		return action(ctx, id)
	}

	l.Info().Str("settlement_id", id).Msg("decision on absent settlement skipped")

	return domain.Settlement{}, nil
}

// History returns the full settlement history, newest first.
func (s *Service) History(ctx context.Context) ([]domain.Settlement, error) {
	settlements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(settlements, func(i, j int) bool {
		return settlements[i].Date.After(settlements[j].Date)
	})

	return settlements, nil
}
