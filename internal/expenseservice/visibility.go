package expenseservice

import (
	"sort"
	"time"

	"github.com/splitbook/splitbook/internal/domain"
)

// Cutoff returns the date of the most recently approved settlement, or the
// zero time when none was approved yet. Approving a settlement closes the
// books as of its date.
func Cutoff(settlements []domain.Settlement) time.Time {
	var cutoff time.Time

	for _, s := range settlements {
		if s.Status == domain.SettlementStatusApproved && s.Date.After(cutoff) {
			cutoff = s.Date
		}
	}

	return cutoff
}

// Visible filters the expense history down to the records still open for the
// next settlement cycle.
//
// An expense is outstanding when it is not deleted and changed strictly
// after the cutoff. Comparing the update instant rather than the expense
// date makes a post-approval edit of an old expense resurface it. The result
// is ordered ascending by expense date; ties keep fetch order (presentation
// contract only).
func Visible(expenses []domain.Expense, settlements []domain.Settlement) []domain.Expense {
	cutoff := Cutoff(settlements)

	visible := make([]domain.Expense, 0, len(expenses))

	for _, e := range expenses {
		if e.Deleted {
			continue
		}

		if !cutoff.IsZero() && !e.EffectiveUpdated().After(cutoff) {
			continue
		}

		visible = append(visible, e)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.Before(visible[j].Date)
	})

	return visible
}
