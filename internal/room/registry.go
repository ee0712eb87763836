package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/quiz"
)

// Join codes use uppercase letters and digits minus the visually ambiguous
// 0/O and 1/I, so they survive being read out loud or retyped.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6

	// Collision handling is regenerate-and-recheck, bounded so a pathological
	// fill level fails loudly instead of spinning.
	codeMaxAttempts = 100
)

// DefaultMaxParticipants caps regular rooms at a pair.
const DefaultMaxParticipants = 2

// Registry is the process-wide room index: by id and by join code. It is an
// explicitly constructed, injectable store (fresh instance per test), not a
// package-level global. There is no eviction; rooms live until process exit.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*Room
	idByCode map[string]string

	randCode func() string
}

func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*Room),
		idByCode: make(map[string]string),
		randCode: randomCode,
	}
}

func randomCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[randIntN(len(codeAlphabet))])
	}
	return b.String()
}

// CreateMatch registers a new swipe-to-match room over a pre-resolved deck.
func (r *Registry) CreateMatch(deck []cards.Card) (*Room, error) {
	return r.create(DefaultMaxParticipants, &MatchState{
		Cards:     deck,
		Decisions: make(map[string]map[string]Decision),
		Likes:     make(map[string]map[string]bool),
	})
}

// CreateBlind registers a new blind-choice room over pre-built rounds.
func (r *Registry) CreateBlind(rounds []cards.Round) (*Room, error) {
	return r.create(DefaultMaxParticipants, &BlindState{
		Rounds: rounds,
		Picks:  make(map[string]map[int]Pick),
	})
}

// CreateQuiz registers a quiz room. The question order is derived
// deterministically from the fresh room id, the pack and the quiz version,
// so the same identity always yields the same session order.
func (r *Registry) CreateQuiz(packID string, poolIDs []string, solo bool) (*Room, error) {
	if len(poolIDs) < quiz.QuestionsPerRun {
		return nil, fmt.Errorf("%w: pack %q has %d questions, need %d",
			ErrPackTooSmall, packID, len(poolIDs), quiz.QuestionsPerRun)
	}

	maxParticipants := DefaultMaxParticipants
	if solo {
		maxParticipants = 1
	}

	roomID := uuid.NewString()
	seed := selectionSeed(roomID, packID, quiz.Version)
	questionIDs := selectQuestions(poolIDs, seed, quiz.QuestionsPerRun)

	return r.register(roomID, maxParticipants, &QuizState{
		QuizID:      quiz.ID,
		QuizVersion: quiz.Version,
		PackID:      packID,
		QuestionIDs: questionIDs,
		Status:      QuizInProgress,
		Answers:     make(map[string]map[string]string),
		Scores:      make(map[string]map[quiz.Axis]int),
	})
}

func (r *Registry) create(maxParticipants int, state State) (*Room, error) {
	return r.register(uuid.NewString(), maxParticipants, state)
}

func (r *Registry) register(roomID string, maxParticipants int, state State) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.uniqueCodeLocked()
	if err != nil {
		return nil, err
	}

	rm := &Room{
		ID:              roomID,
		Code:            code,
		CreatedAt:       time.Now().UTC(),
		MaxParticipants: maxParticipants,
		State:           state,
	}
	r.byID[rm.ID] = rm
	r.idByCode[code] = rm.ID
	return rm, nil
}

func (r *Registry) uniqueCodeLocked() (string, error) {
	for i := 0; i < codeMaxAttempts; i++ {
		code := r.randCode()
		if _, taken := r.idByCode[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique join code after %d attempts", codeMaxAttempts)
}

// GetByID returns the room or nil when absent; the caller decides whether
// that is a 404.
func (r *Registry) GetByID(roomID string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[roomID]
}

// FindByCode looks a room up by join code, case-insensitively.
func (r *Registry) FindByCode(code string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return r.byID[id]
}

// Len reports the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
