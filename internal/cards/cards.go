// Package cards holds the decision-card model shared by the match and
// blind-choice games, plus the collaborators that resolve card decks
// (TMDB movies, word pairs) before a room is created.
package cards

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Source tags where a card came from.
type Source string

const (
	SourceManual Source = "manual"
	SourceLink   Source = "link"
	SourceTMDB   Source = "tmdb"
)

// Card is a single swipeable option.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Source      Source    `json:"source"`
	TMDB        *TMDBInfo `json:"tmdb,omitempty"`
}

// TMDBInfo carries movie provenance for cards resolved from TMDB.
type TMDBInfo struct {
	MovieID     int     `json:"movieId"`
	GenreIDs    []int   `json:"genreIds"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// Round is one blind-choice round: two cards, pick one without seeing the
// partner's pick.
type Round struct {
	Index int  `json:"index"`
	Left  Card `json:"left"`
	Right Card `json:"right"`
}

// WordPair is raw blind-round content from the content store.
type WordPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// DeckSource resolves a shuffled deck of movie cards. Implemented by the
// TMDB client; tests substitute a stub.
type DeckSource interface {
	RandomCards(ctx context.Context, genreID, limit int) ([]Card, error)
}

// PairRounds pairs consecutive cards into up to count rounds. A trailing
// unpaired card is dropped.
func PairRounds(deck []Card, count int) []Round {
	rounds := make([]Round, 0, count)
	for i := 0; i < count; i++ {
		li, ri := i*2, i*2+1
		if ri >= len(deck) {
			break
		}
		rounds = append(rounds, Round{Index: i, Left: deck[li], Right: deck[ri]})
	}
	return rounds
}

// WordRounds turns word pairs into manual-card rounds with fresh ids.
func WordRounds(pairs []WordPair, count int) []Round {
	picked := lo.Shuffle(pairs)
	if len(picked) > count {
		picked = picked[:count]
	}
	rounds := make([]Round, 0, len(picked))
	for i, p := range picked {
		rounds = append(rounds, Round{
			Index: i,
			Left:  Card{ID: uuid.NewString(), Title: p.Left, Source: SourceManual},
			Right: Card{ID: uuid.NewString(), Title: p.Right, Source: SourceManual},
		})
	}
	return rounds
}
