// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates a non-positive or non-finite expense amount.
	ErrInvalidAmount = errors.New("amount must be a positive whole number")
	// ErrMissingDate indicates that the expense date is not set.
	ErrMissingDate = errors.New("date is required")
	// ErrMissingCategory indicates that the expense category is empty.
	ErrMissingCategory = errors.New("category is required")
	// ErrInvalidPayer indicates a payer outside of the two configured parties.
	ErrInvalidPayer = errors.New("payer is not one of the two parties")
	// ErrExpenseNotFound indicates that the expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
)

// Expense holds one shared household expense.
//
// Records are owned by the remote ledger service; this is a read-derived
// snapshot. Deletion is logical only, the remote service never removes rows.
type Expense struct {
	ID          string    `json:"id"`
	Payer       Party     `json:"payer"`
	Amount      int64     `json:"amount"` // whole currency units, must be positive
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Memo        string    `json:"memo,omitempty"`
	Deleted     bool      `json:"deleted"`
	LastUpdated time.Time `json:"lastUpdated,omitempty"`
	CreatedBy   Party     `json:"createdBy,omitempty"`
}

// EffectiveUpdated returns the instant the expense last changed.
// Expenses written before the service tracked update times carry no
// LastUpdated, for those the expense date stands in.
func (e Expense) EffectiveUpdated() time.Time {
	if e.LastUpdated.IsZero() {
		return e.Date
	}
	return e.LastUpdated
}

// CreateExpenseParams holds data needed for Expense creation.
type CreateExpenseParams struct {
	Payer    Party     `json:"payer"`
	Amount   int64     `json:"amount"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Memo     string    `json:"memo,omitempty"`
}

// Validate checks the params against the local pre-flight rules so that
// invalid submissions never reach the transport layer.
func (p CreateExpenseParams) Validate(parties Parties) error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}

	if p.Date.IsZero() {
		return ErrMissingDate
	}

	if p.Category == "" {
		return ErrMissingCategory
	}

	if !parties.Contains(p.Payer) {
		return ErrInvalidPayer
	}

	return nil
}
