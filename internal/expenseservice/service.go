// Package expenseservice manages business logic layer of expenses.
package expenseservice

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/splitbook/splitbook/internal/domain"
)

// Repo provides data access layer interface needed by expense service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package expenseservice
type Repo interface {
	List(ctx context.Context, includeDeleted bool) ([]domain.Expense, error)
	Create(ctx context.Context, arg domain.CreateExpenseParams, createdBy domain.Party) (domain.Expense, error)
	Update(ctx context.Context, id string, arg domain.CreateExpenseParams) (domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

// SettlementLister provides the settlement history needed to derive the
// visibility cutoff.
type SettlementLister interface {
	List(ctx context.Context) ([]domain.Settlement, error)
}

// Service facilitates expense service layer logic.
type Service struct {
	repo        Repo
	settlements SettlementLister
	parties     domain.Parties
}

// New returns expense service struct to manage expense business logic.
func New(repo Repo, settlements SettlementLister, parties domain.Parties) *Service {
	return &Service{
		repo:        repo,
		settlements: settlements,
		parties:     parties,
	}
}

// Create validates and submits a new expense attributed to the acting party.
func (s *Service) Create(ctx context.Context, sess domain.Session, arg domain.CreateExpenseParams) (domain.Expense, error) {
	if err := arg.Validate(s.parties); err != nil {
		return domain.Expense{}, err
	}

	return s.repo.Create(ctx, arg, sess.ActingParty)
}

// Update validates and replaces amount, date, category and memo of the
// expense under edit.
func (s *Service) Update(ctx context.Context, sess domain.Session, id string, arg domain.CreateExpenseParams) (domain.Expense, error) {
	if err := arg.Validate(s.parties); err != nil {
		return domain.Expense{}, err
	}

	return s.repo.Update(ctx, id, arg)
}

// Delete marks an expense as logically deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns one expense, scanning the full history. The remote service
// offers no dedicated single-record query, so deleted records are found too.
func (s *Service) Get(ctx context.Context, id string) (domain.Expense, error) {
	expenses, err := s.repo.List(ctx, true)
	if err != nil {
		return domain.Expense{}, err
	}

	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}

	return domain.Expense{}, domain.ErrExpenseNotFound
}

// ListOutstanding returns the expenses still open for the next settlement
// cycle. The full expense and settlement histories are fetched concurrently;
// a failure in either branch aborts the whole read.
func (s *Service) ListOutstanding(ctx context.Context) ([]domain.Expense, error) {
	var (
		expenses    []domain.Expense
		settlements []domain.Settlement
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		expenses, err = s.repo.List(gctx, true)
		return err
	})

	g.Go(func() error {
		var err error
		settlements, err = s.settlements.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Visible(expenses, settlements), nil
}
