package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const imageBase = "https://image.tmdb.org/t/p/w500"

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, imageBase, "test-key", 5*time.Second, nil)
}

func TestSearchProjectsPosterURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "blade runner" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"Blade Runner","poster_path":"/abc.jpg"},
			{"title":"Blade Runner 2049"}
		]}`))
	}))
	defer srv.Close()

	recs, err := newTestClient(srv.URL).Search(context.Background(), "blade runner")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recs))
	}
	if recs[0].Name != "Blade Runner" {
		t.Fatalf("name = %q", recs[0].Name)
	}
	if recs[0].PosterURL == nil || *recs[0].PosterURL != imageBase+"/abc.jpg" {
		t.Fatalf("poster url = %v", recs[0].PosterURL)
	}
	if recs[1].PosterURL != nil {
		t.Fatalf("result without poster_path must have nil PosterURL, got %v", *recs[1].PosterURL)
	}
}

func TestSearchMissingResultsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1}`))
	}))
	defer srv.Close()

	recs, err := newTestClient(srv.URL).Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("missing results key must not be an error, got %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result list, got %d", len(recs))
	}
}

func TestSearchNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "anything")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Search(context.Background(), "anything")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Search(context.Background(), "fast & furious?"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "fast & furious?" {
		t.Fatalf("query survived escaping incorrectly: %q", gotQuery)
	}
}
