package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/content"
	"github.com/Mothman910/decyzjomat/internal/database"
	"github.com/Mothman910/decyzjomat/internal/migrations"
	"github.com/Mothman910/decyzjomat/internal/room"
)

var errDeckDown = fmt.Errorf("%w: stub deck down", cards.ErrUnavailable)

func stubCards(n int) []cards.Card {
	deck := make([]cards.Card, n)
	for i := range deck {
		deck[i] = cards.Card{
			ID:     fmt.Sprintf("tmdb:%d", i),
			Title:  fmt.Sprintf("Movie %d", i),
			Source: cards.SourceTMDB,
		}
	}
	return deck
}

// stubDeck serves a fixed deck without talking to TMDB.
type stubDeck struct {
	err error
}

func (s stubDeck) RandomCards(_ context.Context, genreID, limit int) ([]cards.Card, error) {
	if s.err != nil {
		return nil, s.err
	}
	return stubCards(limit), nil
}

// stubProvider counts generations and returns a fixed narrative.
type stubProvider struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (p *stubProvider) Generate(context.Context, string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// testDeps wires real in-memory infrastructure (sqlite content store, the
// embedded quiz bank, broker, room service) around the stubs.
func testDeps(t *testing.T) Deps {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := content.NewStore(db)
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("seeding content: %v", err)
	}
	bank, err := store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("loading bank: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker := NewBroker()
	registry := room.NewRegistry()

	return Deps{
		Logger:  logger,
		DB:      db,
		Rooms:   room.NewService(registry, broker, logger),
		Broker:  broker,
		Bank:    bank,
		Content: store,
		Movies:  stubDeck{},
		AI:      &stubProvider{text: "you two fit"},
		SPADir:  "",
	}
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	addRoutes(r, deps)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON posts body and decodes the response into a generic map.
func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return res.StatusCode, parsed
}

func roomField(t *testing.T, body map[string]any, path ...string) any {
	t.Helper()
	var cur any = body
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			t.Fatalf("field %v: %T is not an object", path, cur)
		}
		cur = m[key]
	}
	return cur
}
