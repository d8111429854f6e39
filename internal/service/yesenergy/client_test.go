package yesenergy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ShapeMatch/internal/domain/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestFetchRangeDecodesTable(t *testing.T) {
	var gotAuth, gotItems string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, _ := r.BasicAuth()
		gotAuth = user
		gotItems = r.URL.Query().Get("items")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("DATETIME,HOURENDING,RTLOAD (MW)\n2024-07-15,1,41000\n2024-07-15,2,40200\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, "analyst", "secret", 5*time.Second)
	table, err := c.FetchRange(context.Background(), "RTLOAD_ERCOT", day(2024, 7, 15), day(2024, 7, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "analyst" {
		t.Fatalf("basic auth not sent, got user %q", gotAuth)
	}
	if gotItems != "RTLOAD_ERCOT" {
		t.Fatalf("unexpected items param %q", gotItems)
	}
	if len(table.Header) != 3 || len(table.Rows) != 2 {
		t.Fatalf("unexpected table shape: %+v", table)
	}
	if table.Rows[1][2] != "40200" {
		t.Fatalf("unexpected cell: %+v", table.Rows[1])
	}
}

func TestFetchRangeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", 5*time.Second)
	table, err := c.FetchRange(context.Background(), "X", day(2024, 1, 1), day(2024, 1, 2))
	if err != nil {
		t.Fatalf("empty body is not an error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected empty table")
	}
}

func TestFetchRangeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", 5*time.Second)
	_, err := c.FetchRange(context.Background(), "X", day(2024, 1, 1), day(2024, 1, 2))
	if err == nil {
		t.Fatalf("expected error")
	}
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Source != "yesenergy" {
		t.Fatalf("source identity missing: %+v", ue)
	}
}
