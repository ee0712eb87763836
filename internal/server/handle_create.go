package server

import (
	"net/http"
	"strings"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/quiz"
	"github.com/Mothman910/decyzjomat/internal/room"
)

const (
	defaultCardsLimit = 20
	maxCardsLimit     = 50
	defaultRounds     = 8
	maxRounds         = 20

	blindTopicMovies = "movies"
	blindTopicWords  = "words"
)

type CreateRoomRequest struct {
	Mode     string `json:"mode"`
	ClientID string `json:"clientId,omitempty"`

	// Match mode.
	GenreID    string `json:"genreId,omitempty"`
	CardsLimit int    `json:"cardsLimit,omitempty"`

	// Blind mode.
	Rounds           int    `json:"rounds,omitempty"`
	BlindTopic       string `json:"blindTopic,omitempty"`
	WordsSubcategory string `json:"wordsSubcategory,omitempty"`

	// Quiz mode.
	PackID string `json:"packId,omitempty"`
	Solo   bool   `json:"solo,omitempty"`
}

// RoomResponse wraps the shared room view returned by every room endpoint.
type RoomResponse struct {
	Room *room.View `json:"room"`
}

func handleCreateRoom(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoomRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var rm *room.Room
		var err error
		switch room.Mode(req.Mode) {
		case room.ModeMatch:
			rm, err = createMatchRoom(deps, r, req)
		case room.ModeBlind:
			rm, err = createBlindRoom(deps, r, req)
		case room.ModeQuiz:
			rm, err = createQuizRoom(deps, req)
		default:
			writeError(w, http.StatusBadRequest, "mode must be match, blind or quiz")
			return
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		view := deps.Rooms.View(rm)
		if clientID := strings.TrimSpace(req.ClientID); clientID != "" {
			view, err = deps.Rooms.Join(rm, clientID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
		}

		deps.Logger.Info("room created",
			"room_id", rm.ID,
			"code", rm.Code,
			"mode", req.Mode,
		)
		writeJSON(w, http.StatusCreated, RoomResponse{Room: view})
	}
}

func createMatchRoom(deps Deps, r *http.Request, req CreateRoomRequest) (*room.Room, error) {
	limit := req.CardsLimit
	if limit <= 0 {
		limit = defaultCardsLimit
	}
	if limit > maxCardsLimit {
		limit = maxCardsLimit
	}

	genreID := cards.DefaultGenreID
	if req.GenreID != "" {
		id, ok := cards.Genres[req.GenreID]
		if !ok {
			return nil, errUnknownGenre
		}
		genreID = id
	}

	deck, err := deps.Movies.RandomCards(r.Context(), genreID, limit)
	if err != nil {
		return nil, err
	}
	return deps.Rooms.Registry().CreateMatch(deck)
}

func createBlindRoom(deps Deps, r *http.Request, req CreateRoomRequest) (*room.Room, error) {
	count := req.Rounds
	if count <= 0 {
		count = defaultRounds
	}
	if count > maxRounds {
		count = maxRounds
	}

	var rounds []cards.Round
	switch req.BlindTopic {
	case "", blindTopicMovies:
		genreID := cards.DefaultGenreID
		if req.GenreID != "" {
			id, ok := cards.Genres[req.GenreID]
			if !ok {
				return nil, errUnknownGenre
			}
			genreID = id
		}
		deck, err := deps.Movies.RandomCards(r.Context(), genreID, count*2)
		if err != nil {
			return nil, err
		}
		rounds = cards.PairRounds(deck, count)
	case blindTopicWords:
		pairs, err := deps.Content.WordPairs(r.Context(), req.WordsSubcategory)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, errUnknownSubcategory
		}
		rounds = cards.WordRounds(pairs, count)
	default:
		return nil, errUnknownBlindTopic
	}

	return deps.Rooms.Registry().CreateBlind(rounds)
}

func createQuizRoom(deps Deps, req CreateRoomRequest) (*room.Room, error) {
	packID := req.PackID
	if packID == "" {
		packID = quiz.PackMix
	}
	if !quiz.ValidPack(packID) {
		return nil, errUnknownPack
	}
	return deps.Rooms.Registry().CreateQuiz(packID, deps.Bank.PoolIDs(packID), req.Solo)
}
