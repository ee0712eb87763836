package cards

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func discoverPayload(n int) map[string]any {
	results := make([]map[string]any, 0, n+1)
	for i := 0; i < n; i++ {
		results = append(results, map[string]any{
			"id":           100 + i,
			"title":        "Movie",
			"overview":     "A movie.",
			"poster_path":  "/p.jpg",
			"vote_average": 7.1,
			"genre_ids":    []int{35},
		})
	}
	// One entry without a poster that must be filtered out.
	results = append(results, map[string]any{"id": 999, "title": "No poster"})
	return map[string]any{"page": 1, "total_pages": 10, "results": results}
}

func TestRandomCards(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(discoverPayload(12))
	}))
	defer srv.Close()

	c := NewTMDBClient(srv.URL, "key", testLogger())

	cards, err := c.RandomCards(context.Background(), 35, 6)
	if err != nil {
		t.Fatalf("RandomCards: %v", err)
	}
	if len(cards) != 6 {
		t.Fatalf("len = %d, want 6", len(cards))
	}
	for _, card := range cards {
		if !strings.HasPrefix(card.ID, "tmdb:") {
			t.Errorf("card id = %q, want tmdb: prefix", card.ID)
		}
		if card.Source != SourceTMDB || card.TMDB == nil {
			t.Errorf("card %s missing tmdb provenance", card.ID)
		}
		if card.ImageURL == "" {
			t.Errorf("card %s has no image despite poster filter", card.ID)
		}
	}
	if !strings.Contains(gotQuery, "with_genres=35") {
		t.Errorf("query = %q, missing genre filter", gotQuery)
	}
	if !strings.Contains(gotQuery, "api_key=key") {
		t.Errorf("query = %q, missing api key", gotQuery)
	}
}

func TestRandomCardsRequiresAPIKey(t *testing.T) {
	c := NewTMDBClient("http://unused", "", testLogger())

	_, err := c.RandomCards(context.Background(), 35, 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestRandomCardsRetriesRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(discoverPayload(4))
	}))
	defer srv.Close()

	c := NewTMDBClient(srv.URL, "key", testLogger())

	cards, err := c.RandomCards(context.Background(), 35, 4)
	if err != nil {
		t.Fatalf("RandomCards: %v", err)
	}
	if len(cards) != 4 || calls != 2 {
		t.Fatalf("len = %d, calls = %d", len(cards), calls)
	}
}

func TestRandomCardsGivesUpAfterRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewTMDBClient(srv.URL, "key", testLogger())

	_, err := c.RandomCards(context.Background(), 35, 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if calls != tmdbMaxAttempts {
		t.Fatalf("calls = %d, want %d", calls, tmdbMaxAttempts)
	}
}

func TestRandomCardsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"page": 1, "total_pages": 1, "results": []any{}})
	}))
	defer srv.Close()

	c := NewTMDBClient(srv.URL, "key", testLogger())

	_, err := c.RandomCards(context.Background(), 35, 4)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
