package cards

import (
	"fmt"
	"testing"
)

func deck(n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = Card{ID: fmt.Sprintf("c%d", i), Title: fmt.Sprintf("Card %d", i), Source: SourceManual}
	}
	return out
}

func TestPairRounds(t *testing.T) {
	tests := []struct {
		name     string
		deckSize int
		count    int
		want     int
	}{
		{"exact", 8, 4, 4},
		{"deck limits rounds", 4, 10, 2},
		{"trailing card dropped", 5, 3, 2},
		{"empty deck", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds := PairRounds(deck(tt.deckSize), tt.count)
			if len(rounds) != tt.want {
				t.Fatalf("len = %d, want %d", len(rounds), tt.want)
			}
			for i, r := range rounds {
				if r.Index != i {
					t.Errorf("round %d has index %d", i, r.Index)
				}
				if r.Left.ID != fmt.Sprintf("c%d", i*2) || r.Right.ID != fmt.Sprintf("c%d", i*2+1) {
					t.Errorf("round %d pairs %s/%s", i, r.Left.ID, r.Right.ID)
				}
			}
		})
	}
}

func TestWordRounds(t *testing.T) {
	pairs := []WordPair{
		{Left: "Cat", Right: "Dog"},
		{Left: "Tea", Right: "Coffee"},
		{Left: "Sea", Right: "Mountains"},
	}

	rounds := WordRounds(pairs, 2)
	if len(rounds) != 2 {
		t.Fatalf("len = %d, want 2", len(rounds))
	}

	seen := make(map[string]bool)
	for i, r := range rounds {
		if r.Index != i {
			t.Errorf("round %d has index %d", i, r.Index)
		}
		for _, c := range []Card{r.Left, r.Right} {
			if c.ID == "" || seen[c.ID] {
				t.Errorf("card id %q missing or reused", c.ID)
			}
			seen[c.ID] = true
			if c.Source != SourceManual {
				t.Errorf("card source = %s, want manual", c.Source)
			}
			if c.Title == "" {
				t.Error("card has no title")
			}
		}
	}

	if got := WordRounds(pairs, 10); len(got) != 3 {
		t.Errorf("count beyond pairs: len = %d, want 3", len(got))
	}
	if got := WordRounds(nil, 5); len(got) != 0 {
		t.Errorf("no pairs: len = %d, want 0", len(got))
	}
}
