package expenseservice

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/splitbook/splitbook/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approved(date time.Time) domain.Settlement {
	return domain.Settlement{
		ID:     "s-" + date.Format("20060102"),
		Status: domain.SettlementStatusApproved,
		Date:   date,
	}
}

func TestVisible(t *testing.T) {
	testCases := []struct {
		name        string
		expenses    []domain.Expense
		settlements []domain.Settlement
		wantIDs     []string
	}{
		{
			name: "NoSettlementsShowsAllNonDeleted",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 1)},
				{ID: "e2", Date: day(2024, 1, 5), Deleted: true},
				{ID: "e3", Date: day(2024, 1, 3)},
			},
			wantIDs: []string{"e1", "e3"},
		},
		{
			name: "ApprovedSettlementHidesEarlierExpenses",
			expenses: []domain.Expense{
				{ID: "e1", Amount: 1000, Date: day(2024, 1, 1)},
				{ID: "e2", Amount: 500, Date: day(2024, 1, 5)},
			},
			settlements: []domain.Settlement{approved(day(2024, 1, 3))},
			wantIDs:     []string{"e2"},
		},
		{
			name: "PostApprovalEditResurfacesOldExpense",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 1), LastUpdated: day(2024, 1, 4)},
				{ID: "e2", Date: day(2024, 1, 2)},
			},
			settlements: []domain.Settlement{approved(day(2024, 1, 3))},
			wantIDs:     []string{"e1"},
		},
		{
			name: "UpdateExactlyAtCutoffStaysHidden",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 1), LastUpdated: day(2024, 1, 3)},
			},
			settlements: []domain.Settlement{approved(day(2024, 1, 3))},
			wantIDs:     []string{},
		},
		{
			name: "OnlyLatestApprovalCounts",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 4)},
				{ID: "e2", Date: day(2024, 2, 10)},
			},
			settlements: []domain.Settlement{
				approved(day(2024, 1, 3)),
				approved(day(2024, 2, 1)),
			},
			wantIDs: []string{"e2"},
		},
		{
			name: "PendingAndRejectedSettlementsDoNotHide",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 1)},
			},
			settlements: []domain.Settlement{
				{ID: "s1", Status: domain.SettlementStatusPending, Date: day(2024, 1, 10)},
				{ID: "s2", Status: domain.SettlementStatusRejected, Date: day(2024, 1, 11)},
			},
			wantIDs: []string{"e1"},
		},
		{
			name: "DeletedStaysHiddenEvenWhenRecent",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 5), Deleted: true},
			},
			settlements: []domain.Settlement{approved(day(2024, 1, 3))},
			wantIDs:     []string{},
		},
		{
			name: "OrderedByDateAscendingStable",
			expenses: []domain.Expense{
				{ID: "e1", Date: day(2024, 1, 5)},
				{ID: "e2", Date: day(2024, 1, 1)},
				{ID: "e3", Date: day(2024, 1, 5)},
			},
			wantIDs: []string{"e2", "e1", "e3"},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got := Visible(tc.expenses, tc.settlements)

			gotIDs := make([]string, 0, len(got))
			for _, e := range got {
				gotIDs = append(gotIDs, e.ID)
			}

			if diff := cmp.Diff(tc.wantIDs, gotIDs); diff != "" {
				t.Errorf("Visible() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCutoff(t *testing.T) {
	require.True(t, Cutoff(nil).IsZero())

	settlements := []domain.Settlement{
		{Status: domain.SettlementStatusPending, Date: day(2024, 3, 1)},
		approved(day(2024, 1, 3)),
		approved(day(2024, 2, 1)),
		{Status: domain.SettlementStatusRejected, Date: day(2024, 4, 1)},
	}

	require.Equal(t, day(2024, 2, 1), Cutoff(settlements))
}
