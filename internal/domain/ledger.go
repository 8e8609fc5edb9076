package domain

import "time"

// LedgerSummary holds the authoritative signed balance between the parties.
//
// BalanceA is expressed relative to party A: positive means party B owes
// party A. The sign convention is the remote service's contract and is
// interpreted here, never recomputed from the expense history.
type LedgerSummary struct {
	BalanceA int64 `json:"balanceA"`
}

// BalanceView is the display interpretation of a LedgerSummary.
type BalanceView struct {
	DirectionText string `json:"directionText"`
	Amount        int64  `json:"amount"`
	Settled       bool   `json:"settled"`
}

// SplitPreview holds the client-side equal split of an expense amount.
// The remote service recomputes the split at save time; this preview must
// agree with it.
type SplitPreview struct {
	Payer      Party `json:"payer"`
	PayerShare int64 `json:"payerShare"`
	OtherShare int64 `json:"otherShare"`
}

// LedgerEntry holds one audit-trail record for an expense or settlement.
type LedgerEntry struct {
	ID       string    `json:"id"`
	RefID    string    `json:"refId"`
	Kind     string    `json:"kind"`
	Amount   int64     `json:"amount"` // can be negative for reversing entries
	Recorded time.Time `json:"recorded"`
}
