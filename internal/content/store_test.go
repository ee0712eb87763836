package content

import (
	"context"
	"testing"

	"github.com/Mothman910/decyzjomat/internal/database"
	"github.com/Mothman910/decyzjomat/internal/migrations"
	"github.com/Mothman910/decyzjomat/internal/quiz"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewStore(db)
}

func TestSeedAndLoadBank(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bank, err := store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if bank.Len() != 80 {
		t.Fatalf("bank size = %d, want 80", bank.Len())
	}
	for _, pack := range []string{"interiors", "lifestyle", "food", "activities"} {
		if got := len(bank.PoolIDs(pack)); got != 20 {
			t.Errorf("pack %s has %d questions, want 20", pack, got)
		}
	}
	if got := len(bank.PoolIDs(quiz.PackMix)); got != 80 {
		t.Errorf("mix pool has %d questions, want 80", got)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	bank, err := store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if bank.Len() != 80 {
		t.Fatalf("bank size after reseed = %d, want 80", bank.Len())
	}
}

func TestLoadBankPreservesAuthoredOrderAndWeights(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	bank, err := store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}

	mix := bank.PoolIDs(quiz.PackMix)
	if mix[0] != "int-style-1" {
		t.Errorf("first question = %s, want int-style-1", mix[0])
	}

	q, ok := bank.ByID("int-style-1")
	if !ok {
		t.Fatal("int-style-1 missing from bank")
	}
	opt, ok := q.Option("maximal")
	if !ok {
		t.Fatal("option maximal missing")
	}
	if got := opt.Weights[quiz.AxisMinimalMaximal]; got != 3 {
		t.Errorf("weight minimalMaximal = %d, want 3", got)
	}
}

func TestWordPairs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	subs, err := store.Subcategories(ctx)
	if err != nil {
		t.Fatalf("subcategories: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("subcategories = %v, want 3 entries", subs)
	}

	pairs, err := store.WordPairs(ctx, "animals")
	if err != nil {
		t.Fatalf("word pairs: %v", err)
	}
	if len(pairs) != 16 {
		t.Fatalf("animal pairs = %d, want 16", len(pairs))
	}
	if pairs[0].Left != "Cat" || pairs[0].Right != "Dog" {
		t.Errorf("first animal pair = %+v, want Cat/Dog", pairs[0])
	}

	all, err := store.WordPairs(ctx, "")
	if err != nil {
		t.Fatalf("all word pairs: %v", err)
	}
	if len(all) != 48 {
		t.Fatalf("total pairs = %d, want 48", len(all))
	}
}
