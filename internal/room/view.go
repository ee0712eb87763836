package room

import (
	"time"

	"github.com/samber/lo"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/quiz"
)

// View is the read-optimized projection pushed to clients. It is rebuilt
// after every mutation and on stream connect; building it twice without an
// intervening mutation yields byte-identical JSON.
type View struct {
	RoomID               string    `json:"roomId"`
	Code                 string    `json:"code"`
	CreatedAt            time.Time `json:"createdAt"`
	Mode                 Mode      `json:"mode"`
	ParticipantsCount    int       `json:"participantsCount"`
	ParticipantClientIDs []string  `json:"participantClientIds"`
	MaxParticipants      int       `json:"maxParticipants"`

	Match *MatchView `json:"match,omitempty"`
	Blind *BlindView `json:"blind,omitempty"`
	Quiz  *QuizView  `json:"quiz,omitempty"`
}

// MatchView carries per-card vote counts. There is no stored cursor: the
// "current card" is the first card with fewer votes than participants,
// recomputed client-side from these counts.
type MatchView struct {
	MatchedCardID string         `json:"matchedCardId,omitempty"`
	Cards         []cards.Card   `json:"cards"`
	VotesByCardID map[string]int `json:"votesByCardId"`
}

type BlindStats struct {
	CompletedRounds int `json:"completedRounds"`
	TotalRounds     int `json:"totalRounds"`
	Matches         int `json:"matches"`
	Percent         int `json:"percent"`
}

type BlindView struct {
	Rounds            []cards.Round           `json:"rounds"`
	VotesByRoundIndex map[int]int             `json:"votesByRoundIndex"`
	PicksByClientID   map[string]map[int]Pick `json:"picksByClientId"`
	Stats             BlindStats              `json:"stats"`
}

type QuizView struct {
	QuizID               string                       `json:"quizId"`
	QuizVersion          int                          `json:"quizVersion"`
	PackID               string                       `json:"packId"`
	QuestionIDs          []string                     `json:"questionIds"`
	CurrentIndex         int                          `json:"currentIndex"`
	TotalQuestions       int                          `json:"totalQuestions"`
	Status               QuizStatus                   `json:"status"`
	AnswersByClientID    map[string]map[string]string `json:"answersByClientId"`
	ScoresByClientID     map[string]map[quiz.Axis]int `json:"scoresByClientId"`
	VotesByQuestionIndex map[int]int                  `json:"votesByQuestionIndex"`
	Summary              *QuizSummary                 `json:"summary"`
	AISummary            *AISummary                   `json:"aiSummary"`
}

// buildView projects room state. Caller holds rm.mu; the result shares only
// immutable data (card/round slices, computed summaries) with the room, so
// it can be marshaled after the lock is released.
func buildView(rm *Room) *View {
	clientIDs := rm.clientIDs()

	v := &View{
		RoomID:               rm.ID,
		Code:                 rm.Code,
		CreatedAt:            rm.CreatedAt,
		Mode:                 rm.State.Mode(),
		ParticipantsCount:    len(rm.Participants),
		ParticipantClientIDs: clientIDs,
		MaxParticipants:      rm.MaxParticipants,
	}

	switch st := rm.State.(type) {
	case *MatchState:
		v.Match = buildMatchView(st, clientIDs)
	case *BlindState:
		v.Blind = buildBlindView(st, clientIDs)
	case *QuizState:
		v.Quiz = buildQuizView(st, clientIDs)
	}
	return v
}

func buildMatchView(st *MatchState, clientIDs []string) *MatchView {
	votes := make(map[string]int, len(st.Cards))
	for _, card := range st.Cards {
		n := 0
		for _, cid := range clientIDs {
			if _, voted := st.Decisions[cid][card.ID]; voted {
				n++
			}
		}
		votes[card.ID] = n
	}
	return &MatchView{
		MatchedCardID: st.MatchedCardID,
		Cards:         st.Cards,
		VotesByCardID: votes,
	}
}

func buildBlindView(st *BlindState, clientIDs []string) *BlindView {
	picks := make(map[string]map[int]Pick, len(clientIDs))
	for _, cid := range clientIDs {
		cp := make(map[int]Pick, len(st.Picks[cid]))
		for i, p := range st.Picks[cid] {
			cp[i] = p
		}
		picks[cid] = cp
	}

	votes := make(map[int]int, len(st.Rounds))
	for i := range st.Rounds {
		n := 0
		for _, cid := range clientIDs {
			if _, voted := st.Picks[cid][i]; voted {
				n++
			}
		}
		votes[i] = n
	}

	stats := BlindStats{TotalRounds: len(st.Rounds)}
	if len(clientIDs) == 2 {
		a, b := clientIDs[0], clientIDs[1]
		for i := range st.Rounds {
			pa, okA := st.Picks[a][i]
			pb, okB := st.Picks[b][i]
			if !okA || !okB {
				continue
			}
			stats.CompletedRounds++
			if pa == pb {
				stats.Matches++
			}
		}
	}
	if stats.CompletedRounds > 0 {
		stats.Percent = int(float64(stats.Matches)/float64(stats.CompletedRounds)*100 + 0.5)
	}

	return &BlindView{
		Rounds:            st.Rounds,
		VotesByRoundIndex: votes,
		PicksByClientID:   picks,
		Stats:             stats,
	}
}

func buildQuizView(st *QuizState, clientIDs []string) *QuizView {
	answers := make(map[string]map[string]string, len(st.Answers))
	for cid, m := range st.Answers {
		answers[cid] = lo.Assign(map[string]string{}, m)
	}
	scores := make(map[string]map[quiz.Axis]int, len(st.Scores))
	for cid, m := range st.Scores {
		scores[cid] = lo.Assign(map[quiz.Axis]int{}, m)
	}

	votes := make(map[int]int, len(st.QuestionIDs))
	for i, qid := range st.QuestionIDs {
		n := 0
		for _, cid := range clientIDs {
			if st.Answers[cid][qid] != "" {
				n++
			}
		}
		votes[i] = n
	}

	return &QuizView{
		QuizID:               st.QuizID,
		QuizVersion:          st.QuizVersion,
		PackID:               st.PackID,
		QuestionIDs:          st.QuestionIDs,
		CurrentIndex:         st.CurrentIndex,
		TotalQuestions:       len(st.QuestionIDs),
		Status:               st.Status,
		AnswersByClientID:    answers,
		ScoresByClientID:     scores,
		VotesByQuestionIndex: votes,
		Summary:              st.Summary,
		AISummary:            st.AISummary,
	}
}
