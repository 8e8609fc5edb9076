package domain

import (
	"errors"
	"time"
)

var (
	// ErrSettlementPending indicates that a settlement request is already open.
	ErrSettlementPending = errors.New("a settlement request is already pending")
	// ErrSettlementNotPending indicates a decision on a settlement that is no longer pending.
	ErrSettlementNotPending = errors.New("settlement is not pending")
	// ErrSettlementNotFound indicates that the settlement is not found.
	ErrSettlementNotFound = errors.New("settlement not found")
)

// SettlementStatus represents the lifecycle state of a settlement.
type SettlementStatus string

// Settlement lifecycle states. APPROVED and REJECTED are terminal, history is
// never rewritten afterwards.
const (
	SettlementStatusPending  SettlementStatus = "PENDING"
	SettlementStatusApproved SettlementStatus = "APPROVED"
	SettlementStatusRejected SettlementStatus = "REJECTED"
)

// Settlement holds one settlement request between the two parties.
//
// At most one PENDING settlement exists at any time. The remote service
// enforces that, but offers no dedicated current-pending query, callers
// re-derive it by scanning the full history.
type Settlement struct {
	ID            string           `json:"id"`
	Applicant     Party            `json:"applicant"`
	Status        SettlementStatus `json:"status"`
	Date          time.Time        `json:"date"`
	DirectionText string           `json:"directionText"`
	Amount        int64            `json:"amount"`
}

// RequestSettlementParams holds data needed to open a settlement request.
type RequestSettlementParams struct {
	Applicant     Party     `json:"applicant"`
	DirectionText string    `json:"directionText"`
	Amount        int64     `json:"amount"`
	RequestedAt   time.Time `json:"requestedAt"`
}
