package room

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Mothman910/decyzjomat/internal/quiz"
)

// EventRoomUpdate tags every pushed envelope.
const EventRoomUpdate = "room:update"

// Envelope wraps a view for the push stream.
type Envelope struct {
	Type string `json:"type"`
	Room *View  `json:"room"`
}

// Publisher fans a payload out to every current subscriber of a room. The
// in-memory broker implements it; a broker-backed implementation could be
// swapped in without touching the state machine.
type Publisher interface {
	Publish(roomID string, data []byte)
}

// Service is the room state machine. Every mutation validates, mutates
// under the room's lock, rebuilds the derived view and broadcasts it.
type Service struct {
	registry *Registry
	pub      Publisher
	logger   *slog.Logger
}

func NewService(registry *Registry, pub Publisher, logger *slog.Logger) *Service {
	return &Service{registry: registry, pub: pub, logger: logger}
}

// Registry exposes lookups to the transport layer.
func (s *Service) Registry() *Registry { return s.registry }

// Join idempotently adds clientID to the room. A re-join with a known
// clientID is a no-op; a new clientID beyond capacity fails with ErrRoomFull.
func (s *Service) Join(rm *Room, clientID string) (*View, error) {
	rm.mu.Lock()
	if !rm.participant(clientID) {
		if len(rm.Participants) >= rm.MaxParticipants {
			rm.mu.Unlock()
			return nil, ErrRoomFull
		}
		rm.Participants = append(rm.Participants, Participant{
			ClientID: clientID,
			JoinedAt: time.Now().UTC(),
		})
	}
	view := buildView(rm)
	rm.mu.Unlock()

	s.broadcast(rm.ID, view)
	return view, nil
}

// View rebuilds the derived view without mutating anything.
func (s *Service) View(rm *Room) *View {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return buildView(rm)
}

// Snapshot is View pre-marshaled as a push envelope, for the initial frame
// on stream connect.
func (s *Service) Snapshot(rm *Room) ([]byte, error) {
	return json.Marshal(Envelope{Type: EventRoomUpdate, Room: s.View(rm)})
}

// SubmitChoice records a match-mode swipe. Re-submitting for the same card
// overwrites the prior decision. When both current participants have a like
// on the same card and no match is set yet, that card becomes the match;
// once set it is never replaced.
func (s *Service) SubmitChoice(rm *Room, clientID, cardID string, decision Decision) (*View, error) {
	rm.mu.Lock()
	st, ok := rm.State.(*MatchState)
	if !ok {
		rm.mu.Unlock()
		return nil, ErrWrongMode
	}
	if !rm.participant(clientID) {
		rm.mu.Unlock()
		return nil, ErrNotParticipant
	}

	if st.Decisions[clientID] == nil {
		st.Decisions[clientID] = make(map[string]Decision)
	}
	st.Decisions[clientID][cardID] = decision

	if decision == DecisionLike {
		if st.Likes[clientID] == nil {
			st.Likes[clientID] = make(map[string]bool)
		}
		st.Likes[clientID][cardID] = true
	}

	if st.MatchedCardID == "" && len(rm.Participants) == 2 {
		a, b := rm.Participants[0].ClientID, rm.Participants[1].ClientID
		if st.Likes[a][cardID] && st.Likes[b][cardID] {
			st.MatchedCardID = cardID
		}
	}

	view := buildView(rm)
	rm.mu.Unlock()

	s.broadcast(rm.ID, view)
	return view, nil
}

// SubmitPick records a blind-mode pick for a round, last write wins.
// Agreement is purely derived in the view; there is no side effect here.
func (s *Service) SubmitPick(rm *Room, clientID string, roundIndex int, pick Pick) (*View, error) {
	rm.mu.Lock()
	st, ok := rm.State.(*BlindState)
	if !ok {
		rm.mu.Unlock()
		return nil, ErrWrongMode
	}
	if !rm.participant(clientID) {
		rm.mu.Unlock()
		return nil, ErrNotParticipant
	}
	if roundIndex < 0 || roundIndex >= len(st.Rounds) {
		rm.mu.Unlock()
		return nil, ErrRoundOutOfRange
	}

	if st.Picks[clientID] == nil {
		st.Picks[clientID] = make(map[int]Pick)
	}
	st.Picks[clientID][roundIndex] = pick

	view := buildView(rm)
	rm.mu.Unlock()

	s.broadcast(rm.ID, view)
	return view, nil
}

// SubmitAnswer records a quiz answer in strict lockstep: question must be
// the one at the current cursor. A duplicate answer for an already-answered
// question is swallowed (no score change, no broadcast). The cursor advances
// once every current participant has answered the current question; reaching
// the end flips the run to completed and computes the summary exactly once.
func (s *Service) SubmitAnswer(rm *Room, clientID string, question quiz.Question, optionID string) (*View, error) {
	rm.mu.Lock()
	st, ok := rm.State.(*QuizState)
	if !ok {
		rm.mu.Unlock()
		return nil, ErrWrongMode
	}
	if st.Status != QuizInProgress {
		rm.mu.Unlock()
		return nil, ErrQuizCompleted
	}
	if !rm.participant(clientID) {
		rm.mu.Unlock()
		return nil, ErrNotParticipant
	}
	if st.CurrentIndex >= len(st.QuestionIDs) || question.ID != st.QuestionIDs[st.CurrentIndex] {
		rm.mu.Unlock()
		return nil, ErrOutOfSync
	}

	if st.Answers[clientID][question.ID] != "" {
		// Duplicate network retry: return current state, don't double-count.
		view := buildView(rm)
		rm.mu.Unlock()
		return view, nil
	}

	option, ok := question.Option(optionID)
	if !ok {
		rm.mu.Unlock()
		return nil, ErrUnknownOption
	}

	if st.Answers[clientID] == nil {
		st.Answers[clientID] = make(map[string]string)
	}
	st.Answers[clientID][question.ID] = optionID

	if st.Scores[clientID] == nil {
		st.Scores[clientID] = make(map[quiz.Axis]int, len(quiz.Axes))
	}
	for _, ax := range quiz.Axes {
		st.Scores[clientID][ax] += option.Weights[ax]
	}

	allAnswered := true
	for _, p := range rm.Participants {
		if st.Answers[p.ClientID][question.ID] == "" {
			allAnswered = false
			break
		}
	}
	if allAnswered {
		st.CurrentIndex++
		if st.CurrentIndex >= len(st.QuestionIDs) {
			st.Status = QuizCompleted
			st.Summary = computeQuizSummary(st.Scores, rm.clientIDs())
		}
	}

	view := buildView(rm)
	rm.mu.Unlock()

	s.broadcast(rm.ID, view)
	return view, nil
}

// SummaryProjection returns the deterministic projection of quiz state that
// feeds the narrative generator, together with its content hash. Fails
// unless the run is completed with exactly two participants.
func (s *Service) SummaryProjection(rm *Room) (SummaryProjection, string, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	st, ok := rm.State.(*QuizState)
	if !ok {
		return SummaryProjection{}, "", ErrWrongMode
	}
	if st.Status != QuizCompleted || len(rm.Participants) != 2 {
		return SummaryProjection{}, "", ErrSummaryNotReady
	}
	proj := projectionLocked(rm, st)
	return proj, proj.Hash(), nil
}

// CachedAISummary returns the cached narrative when its input hash matches.
func (s *Service) CachedAISummary(rm *Room, inputHash string) (string, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	st, ok := rm.State.(*QuizState)
	if !ok || st.AISummary == nil {
		return "", false
	}
	if st.AISummary.InputHash != inputHash || st.AISummary.Text == "" {
		return "", false
	}
	return st.AISummary.Text, true
}

// SetAISummary stores a generated narrative. The write is dropped with
// ErrStaleSummary when the room's current projection no longer hashes to
// inputHash, so a slow generation can't clobber newer state.
func (s *Service) SetAISummary(rm *Room, inputHash, text string) (*View, error) {
	rm.mu.Lock()
	st, ok := rm.State.(*QuizState)
	if !ok {
		rm.mu.Unlock()
		return nil, ErrWrongMode
	}
	if st.Status != QuizCompleted || len(rm.Participants) != 2 {
		rm.mu.Unlock()
		return nil, ErrSummaryNotReady
	}
	if projectionLocked(rm, st).Hash() != inputHash {
		rm.mu.Unlock()
		return nil, ErrStaleSummary
	}

	st.AISummary = &AISummary{Text: text, InputHash: inputHash}
	view := buildView(rm)
	rm.mu.Unlock()

	s.broadcast(rm.ID, view)
	return view, nil
}

func (s *Service) broadcast(roomID string, view *View) {
	data, err := json.Marshal(Envelope{Type: EventRoomUpdate, Room: view})
	if err != nil {
		s.logger.Error("marshaling room update", "room_id", roomID, "error", err)
		return
	}
	s.pub.Publish(roomID, data)
}
