package domain

// Session carries the acting state of one logical UI session: which party is
// acting and which expense, if any, is open for editing.
//
// It is passed by value through every operation that needs it. The state must
// not be shared between concurrent logical sessions, so nothing here is
// process-wide.
type Session struct {
	ActingParty      Party
	EditingExpenseID string
}

// Editing reports whether the session has an expense open for editing.
func (s Session) Editing() bool {
	return s.EditingExpenseID != ""
}
