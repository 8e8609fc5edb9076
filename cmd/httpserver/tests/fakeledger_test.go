//go:build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// fakeLedger is an in-memory stand-in for the remote ledger service. It
// implements just enough of the wire contract for end-to-end flows: paginated
// reads, logical deletion, the single-pending-settlement rule and the signed
// balance relative to partyA.
type fakeLedger struct {
	mu          sync.Mutex
	partyA      string
	seq         int
	expenses    []*expenseRecord
	settlements []*settlementRecord
	entries     []entryRecord
}

type expenseRecord struct {
	ID          string
	Payer       string
	Amount      int64
	Date        string
	Category    string
	Memo        string
	Deleted     bool
	LastUpdated time.Time
	CreatedBy   string
}

type settlementRecord struct {
	ID            string
	Applicant     string
	Status        string
	Date          time.Time
	DirectionText string
	Amount        int64
}

type entryRecord struct {
	ID       string
	RefID    string
	Kind     string
	Amount   int64
	Recorded time.Time
}

func newFakeLedger(partyA string) *fakeLedger {
	return &fakeLedger{partyA: partyA}
}

type expenseWire struct {
	ID          string `json:"id"`
	Payer       string `json:"payer"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Memo        string `json:"memo,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

type settlementWire struct {
	ID            string `json:"id"`
	Applicant     string `json:"applicant"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	DirectionText string `json:"directionText"`
	Amount        int64  `json:"amount"`
}

type entryWire struct {
	ID       string `json:"id"`
	RefID    string `json:"refId"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
	Recorded string `json:"recorded"`
}

func (f *fakeLedger) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (e *expenseRecord) wire() expenseWire {
	w := expenseWire{
		ID:        e.ID,
		Payer:     e.Payer,
		Amount:    e.Amount,
		Date:      e.Date,
		Category:  e.Category,
		Memo:      e.Memo,
		Deleted:   e.Deleted,
		CreatedBy: e.CreatedBy,
	}
	if !e.LastUpdated.IsZero() {
		w.LastUpdated = e.LastUpdated.Format(time.RFC3339Nano)
	}

	return w
}

func (s *settlementRecord) wire() settlementWire {
	return settlementWire{
		ID:            s.ID,
		Applicant:     s.Applicant,
		Status:        s.Status,
		Date:          s.Date.Format(time.RFC3339Nano),
		DirectionText: s.DirectionText,
		Amount:        s.Amount,
	}
}

// cutoff is the latest approval instant, zero when nothing was approved yet.
func (f *fakeLedger) cutoff() time.Time {
	var cutoff time.Time

	for _, s := range f.settlements {
		if s.Status == "APPROVED" && s.Date.After(cutoff) {
			cutoff = s.Date
		}
	}

	return cutoff
}

// balanceA recomputes the signed balance from the expenses still open since
// the last approval. Positive means partyB owes partyA.
func (f *fakeLedger) balanceA() int64 {
	cutoff := f.cutoff()

	var balance int64

	for _, e := range f.expenses {
		if e.Deleted || !e.LastUpdated.After(cutoff) {
			continue
		}

		otherShare := e.Amount / 2
		if e.Payer == f.partyA {
			balance += otherShare
		} else {
			balance -= otherShare
		}
	}

	return balance
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type page struct {
	Items      any    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

func (f *fakeLedger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path

	switch {
	case path == "/expenses" && r.Method == http.MethodGet:
		f.listExpenses(w, r)
	case path == "/expenses" && r.Method == http.MethodPost:
		f.createExpense(w, r)
	case strings.HasPrefix(path, "/expenses/") && r.Method == http.MethodPut:
		f.updateExpense(w, r, strings.TrimPrefix(path, "/expenses/"))
	case strings.HasPrefix(path, "/expenses/") && r.Method == http.MethodDelete:
		f.deleteExpense(w, strings.TrimPrefix(path, "/expenses/"))
	case path == "/settlements" && r.Method == http.MethodGet:
		f.listSettlements(w)
	case path == "/settlements" && r.Method == http.MethodPost:
		f.requestSettlement(w, r)
	case strings.HasPrefix(path, "/settlements/") && r.Method == http.MethodPost:
		f.decideSettlement(w, strings.TrimPrefix(path, "/settlements/"))
	case path == "/balance" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]int64{"balanceA": f.balanceA()})
	case path == "/ledger/entries" && r.Method == http.MethodGet:
		f.listEntries(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeLedger) listExpenses(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("includeDeleted") == "1"

	items := []expenseWire{}

	for _, e := range f.expenses {
		if e.Deleted && !includeDeleted {
			continue
		}

		items = append(items, e.wire())
	}

	writeJSON(w, http.StatusOK, page{Items: items})
}

func (f *fakeLedger) createExpense(w http.ResponseWriter, r *http.Request) {
	var in expenseWire
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e := &expenseRecord{
		ID:          f.nextID("e"),
		Payer:       in.Payer,
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    in.Category,
		Memo:        in.Memo,
		LastUpdated: time.Now().UTC(),
		CreatedBy:   in.CreatedBy,
	}

	f.expenses = append(f.expenses, e)
	f.entries = append(f.entries, entryRecord{
		ID:       f.nextID("le"),
		RefID:    e.ID,
		Kind:     "EXPENSE",
		Amount:   e.Amount,
		Recorded: e.LastUpdated,
	})

	writeJSON(w, http.StatusOK, e.wire())
}

func (f *fakeLedger) findExpense(id string) *expenseRecord {
	for _, e := range f.expenses {
		if e.ID == id {
			return e
		}
	}

	return nil
}

func (f *fakeLedger) updateExpense(w http.ResponseWriter, r *http.Request, id string) {
	e := f.findExpense(id)
	if e == nil {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	var in expenseWire
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e.Payer = in.Payer
	e.Amount = in.Amount
	e.Date = in.Date
	e.Category = in.Category
	e.Memo = in.Memo
	e.LastUpdated = time.Now().UTC()

	writeJSON(w, http.StatusOK, e.wire())
}

func (f *fakeLedger) deleteExpense(w http.ResponseWriter, id string) {
	e := f.findExpense(id)
	if e == nil {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	e.Deleted = true
	e.LastUpdated = time.Now().UTC()

	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeLedger) listSettlements(w http.ResponseWriter) {
	items := []settlementWire{}

	for _, s := range f.settlements {
		items = append(items, s.wire())
	}

	writeJSON(w, http.StatusOK, page{Items: items})
}

func (f *fakeLedger) requestSettlement(w http.ResponseWriter, r *http.Request) {
	for _, s := range f.settlements {
		if s.Status == "PENDING" {
			http.Error(w, "settlement already pending", http.StatusConflict)
			return
		}
	}

	var in settlementWire
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s := &settlementRecord{
		ID:            f.nextID("s"),
		Applicant:     in.Applicant,
		Status:        "PENDING",
		Date:          date,
		DirectionText: in.DirectionText,
		Amount:        in.Amount,
	}

	f.settlements = append(f.settlements, s)

	writeJSON(w, http.StatusOK, s.wire())
}

func (f *fakeLedger) decideSettlement(w http.ResponseWriter, rest string) {
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	id, action := parts[0], parts[1]

	var record *settlementRecord

	for _, s := range f.settlements {
		if s.ID == id {
			record = s
			break
		}
	}

	if record == nil {
		http.Error(w, "settlement not found", http.StatusNotFound)
		return
	}

	if record.Status != "PENDING" {
		http.Error(w, "settlement already decided", http.StatusConflict)
		return
	}

	switch action {
	case "approve":
		record.Status = "APPROVED"
		// The approval instant governs the visibility cutoff.
		record.Date = time.Now().UTC()
		f.entries = append(f.entries, entryRecord{
			ID:       f.nextID("le"),
			RefID:    record.ID,
			Kind:     "SETTLEMENT",
			Amount:   -record.Amount,
			Recorded: record.Date,
		})
	case "reject":
		record.Status = "REJECTED"
	default:
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, record.wire())
}

func (f *fakeLedger) listEntries(w http.ResponseWriter, r *http.Request) {
	refID := r.URL.Query().Get("refId")

	items := []entryWire{}

	for _, e := range f.entries {
		if e.RefID != refID {
			continue
		}

		items = append(items, entryWire{
			ID:       e.ID,
			RefID:    e.RefID,
			Kind:     e.Kind,
			Amount:   e.Amount,
			Recorded: e.Recorded.Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, page{Items: items})
}
