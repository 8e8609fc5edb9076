package domain

// Overview is the composite snapshot behind the home and clearance screens:
// the outstanding expenses, the settlement history, the interpreted balance
// and the open settlement request, all read in one consistent render.
type Overview struct {
	Generation  int64        `json:"generation"`
	Outstanding []Expense    `json:"outstanding"`
	History     []Settlement `json:"history"`
	Balance     BalanceView  `json:"balance"`
	Pending     *Settlement  `json:"pending,omitempty"`
}
