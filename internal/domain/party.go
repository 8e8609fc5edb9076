package domain

// Party identifies one of the two fixed household members.
type Party string

// Parties holds the two configured party identifiers. A is the party the
// authoritative ledger balance is expressed relative to.
type Parties struct {
	A Party
	B Party
}

// Contains reports whether p is one of the two configured parties.
func (ps Parties) Contains(p Party) bool {
	return p == ps.A || p == ps.B
}

// Other returns the counterparty of p. The zero Party is returned when p is
// not a configured party.
func (ps Parties) Other(p Party) Party {
	switch p {
	case ps.A:
		return ps.B
	case ps.B:
		return ps.A
	}

	return ""
}
