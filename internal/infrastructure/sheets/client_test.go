package sheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prnse-cda/cda-store/internal/config"
)

func testClient(baseURL string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{
		Sheets: config.SheetsConfig{
			PublishedBaseURL: baseURL,
			FetchTimeout:     5 * time.Second,
			FetchRatePerSec:  100,
			FetchBurst:       10,
		},
	}, log)
}

func TestFetchParsesRows(t *testing.T) {
	var gotGID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGID = r.URL.Query().Get("gid")
		if r.URL.Query().Get("output") != "csv" {
			t.Errorf("missing output=csv, got query %q", r.URL.RawQuery)
		}
		io.WriteString(w, "ID, Name ,Price\n1,Kurti,\"₹1,299\"\n2,Saree,2500\n")
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).Fetch(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotGID != "42" {
		t.Fatalf("requested gid = %q, want 42", gotGID)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Headers are normalized: lower-cased and trimmed.
	if rows[0]["id"] != "1" || rows[0]["name"] != "Kurti" || rows[0]["price"] != "₹1,299" {
		t.Fatalf("row 0 = %v", rows[0])
	}
}

func TestFetchRaggedAndEmptyRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "id,name,price\n1,Kurti\n,,\n2,Saree,2500\n")
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).Fetch(context.Background(), "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d rows", len(rows))
	}
	if _, ok := rows[0]["price"]; ok {
		t.Fatalf("short record should lack trailing keys, got %v", rows[0])
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Fetch(context.Background(), "0"); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	rows, err := testClient(srv.URL).Fetch(context.Background(), "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestFetchRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "single=true") {
			t.Errorf("missing single=true in query %q", r.URL.RawQuery)
		}
		io.WriteString(w, "id\n1\n")
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Fetch(context.Background(), "0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
