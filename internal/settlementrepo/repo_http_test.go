package settlementrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/splitbook/splitbook/internal/domain"
	"github.com/splitbook/splitbook/pkg/ledgerapi"
)

func newRepo(t *testing.T, handler http.HandlerFunc) *RepoHTTP {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewRepoHTTP(ledgerapi.NewClient(server.URL, time.Second))
}

func TestListFollowsCursor(t *testing.T) {
	pages := map[string]string{
		"": `{"items":[
			{"id":"s1","applicant":"Aさん","status":"APPROVED","date":"2024-01-03T00:00:00Z",
			 "directionText":"BさんがAさんに支払う","amount":250}
		],"nextCursor":"p2"}`,
		"p2": `{"items":[
			{"id":"s2","applicant":"Bさん","status":"PENDING","date":"2024-02-01T09:30:00Z",
			 "directionText":"AさんがBさんに支払う","amount":120}
		],"nextCursor":""}`,
	}

	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/settlements", r.URL.Path)
		_, _ = w.Write([]byte(pages[r.URL.Query().Get("cursor")]))
	})

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.SettlementStatusApproved, got[0].Status)
	require.Equal(t, domain.SettlementStatusPending, got[1].Status)
	require.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got[0].Date)
}

func TestRequest(t *testing.T) {
	requestedAt := time.Date(2024, 2, 1, 9, 30, 15, 0, time.UTC)
	wantKey := ledgerapi.IdempotencyKey("Aさん", requestedAt.Format(time.RFC3339))

	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/settlements", r.URL.Path)
		require.Equal(t, wantKey, r.Header.Get("Idempotency-Key"))

		_, _ = w.Write([]byte(`{"id":"s3","applicant":"Aさん","status":"PENDING",
			"date":"2024-02-01T09:30:15Z","directionText":"BさんがAさんに支払う","amount":500}`))
	})

	arg := domain.RequestSettlementParams{
		Applicant:     "Aさん",
		DirectionText: "BさんがAさんに支払う",
		Amount:        500,
		RequestedAt:   requestedAt,
	}

	created, err := repo.Request(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, "s3", created.ID)
	require.Equal(t, domain.SettlementStatusPending, created.Status)
}

func TestRequestConflict(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "settlement already pending", http.StatusConflict)
	})

	arg := domain.RequestSettlementParams{
		Applicant:   "Aさん",
		RequestedAt: time.Now(),
	}

	_, err := repo.Request(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrSettlementPending)
}

func TestApprove(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/settlements/s1/approve", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"s1","applicant":"Aさん","status":"APPROVED",
			"date":"2024-02-02T12:00:00Z","directionText":"BさんがAさんに支払う","amount":500}`))
	})

	decided, err := repo.Approve(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, domain.SettlementStatusApproved, decided.Status)
}

func TestRejectNoLongerPending(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not pending", http.StatusConflict)
	})

	_, err := repo.Reject(context.Background(), "s1")
	require.ErrorIs(t, err, domain.ErrSettlementNotPending)
}

func TestApproveNotFound(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := repo.Approve(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrSettlementNotFound)
}
