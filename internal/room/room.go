// Package room implements the shared-session core: the in-memory registry,
// the per-mode state machines, the derived view builder and the change
// notification fan-out. Rooms live for the process lifetime; there is no
// persistence and no cross-process sharing.
package room

import (
	"sync"
	"time"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/quiz"
)

// Mode is the fixed game type of a room, set at creation.
type Mode string

const (
	ModeMatch Mode = "match"
	ModeBlind Mode = "blind"
	ModeQuiz  Mode = "quiz"
)

// Decision is a swipe on a match card.
type Decision string

const (
	DecisionLike Decision = "like"
	DecisionNope Decision = "nope"
)

// Pick is a blind-choice side.
type Pick string

const (
	PickLeft  Pick = "left"
	PickRight Pick = "right"
)

// Participant is a joined client. Join order is meaningful: the first two
// entries are the "A"/"B" sides of every pairwise comparison.
type Participant struct {
	ClientID string    `json:"clientId"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Room is one shared session. All mutation goes through Service methods,
// which serialize on mu; match detection, cursor advancement and vote
// counting read-then-write the per-client maps and are not safe under
// parallel mutation.
type Room struct {
	mu sync.Mutex

	ID              string
	Code            string
	CreatedAt       time.Time
	MaxParticipants int
	Participants    []Participant
	State           State
}

// State is the mode-tagged variant payload. The concrete type never changes
// after creation, which is what structurally enforces "mode never changes".
type State interface {
	Mode() Mode
}

// MatchState backs swipe-to-match rooms.
type MatchState struct {
	Cards []cards.Card
	// Decisions is clientId -> cardId -> decision, last write wins.
	Decisions map[string]map[string]Decision
	// Likes is clientId -> cardId -> true, the symmetric match index.
	Likes map[string]map[string]bool
	// MatchedCardID is set by the first double-like and never replaced.
	MatchedCardID string
}

func (*MatchState) Mode() Mode { return ModeMatch }

// BlindState backs blind-choice rooms. Agreement is derived, never stored.
type BlindState struct {
	Rounds []cards.Round
	// Picks is clientId -> roundIndex -> pick, last write wins.
	Picks map[string]map[int]Pick
}

func (*BlindState) Mode() Mode { return ModeBlind }

// QuizStatus is the quiz run state: monotonic, one-directional.
type QuizStatus string

const (
	QuizInProgress QuizStatus = "in_progress"
	QuizCompleted  QuizStatus = "completed"
)

// QuizState backs compatibility-quiz rooms. QuestionIDs is fixed at
// creation by a deterministic seeded selection.
type QuizState struct {
	QuizID      string
	QuizVersion int
	PackID      string
	QuestionIDs []string
	// CurrentIndex is the lockstep cursor: 0..len(QuestionIDs).
	CurrentIndex int
	Status       QuizStatus
	// Answers is clientId -> questionId -> optionId. Duplicate submissions
	// for an answered question are swallowed so retries never double-count.
	Answers map[string]map[string]string
	// Scores is clientId -> axis -> accumulated weight.
	Scores map[string]map[quiz.Axis]int
	// Summary is computed exactly once, at the completion transition.
	Summary *QuizSummary
	// AISummary caches the generated narrative, keyed by input hash.
	AISummary *AISummary
}

func (*QuizState) Mode() Mode { return ModeQuiz }

// AISummary is a cached narrative keyed by the content hash of the quiz
// projection that produced it.
type AISummary struct {
	Text      string `json:"text"`
	InputHash string `json:"inputHash"`
}

func (r *Room) participant(clientID string) bool {
	for _, p := range r.Participants {
		if p.ClientID == clientID {
			return true
		}
	}
	return false
}

func (r *Room) clientIDs() []string {
	ids := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		ids[i] = p.ClientID
	}
	return ids
}
