// Package overviewservice composes the read-side overview of the household
// ledger out of the expense, settlement and balance services.
package overviewservice

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/errorspkg"
)

// ExpenseService provides the outstanding expense view.
//
//go:generate mockgen -source service.go -destination service_mock.go -package overviewservice
type ExpenseService interface {
	ListOutstanding(ctx context.Context) ([]domain.Expense, error)
}

// SettlementService provides the settlement history and the pending scan.
type SettlementService interface {
	History(ctx context.Context) ([]domain.Settlement, error)
	FindPending(ctx context.Context) (domain.Settlement, bool, error)
}

// Balancer provides the interpreted authoritative balance.
type Balancer interface {
	Balance(ctx context.Context) (domain.BalanceView, error)
}

// Service facilitates overview composition logic.
type Service struct {
	expenses    ExpenseService
	settlements SettlementService
	ledger      Balancer
	generation  int64
}

// New returns overview service struct.
func New(expenses ExpenseService, settlements SettlementService, ledger Balancer) *Service {
	return &Service{
		expenses:    expenses,
		settlements: settlements,
		ledger:      ledger,
	}
}

// Render reads all overview branches concurrently and joins them.
//
// A failure in any branch aborts the whole render, partial overviews are
// never returned. Each render takes the next generation number; a render
// that finishes after a newer one has started is stale and yields
// errorspkg.ErrStaleView so the caller drops it instead of overwriting a
// fresher screen.
func (s *Service) Render(ctx context.Context) (domain.Overview, error) {
	gen := atomic.AddInt64(&s.generation, 1)

	var (
		outstanding []domain.Expense
		history     []domain.Settlement
		balance     domain.BalanceView
		pending     domain.Settlement
		hasPending  bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		outstanding, err = s.expenses.ListOutstanding(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		history, err = s.settlements.History(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		balance, err = s.ledger.Balance(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		pending, hasPending, err = s.settlements.FindPending(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Overview{}, err
	}

	if atomic.LoadInt64(&s.generation) != gen {
		return domain.Overview{}, errorspkg.ErrStaleView
	}

	overview := domain.Overview{
		Generation:  gen,
		Outstanding: outstanding,
		History:     history,
		Balance:     balance,
	}

	if hasPending {
		overview.Pending = &pending
	}

	return overview, nil
}
