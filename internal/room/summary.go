package room

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"

	"github.com/Mothman910/decyzjomat/internal/quiz"
)

// summaryTopN caps the ranked agreement/friction lists.
const summaryTopN = 3

// AxisDiff is one axis with the absolute score difference between the two
// participants.
type AxisDiff struct {
	AxisID quiz.Axis `json:"axisId"`
	Diff   int       `json:"diff"`
}

// QuizSummary is the pairwise compatibility result, computed once at the
// completion transition.
type QuizSummary struct {
	AgreementPercent int               `json:"agreementPercent"`
	AxisDiffs        map[quiz.Axis]int `json:"axisDiffs"`
	TopMatches       []AxisDiff        `json:"topMatches"`
	TopFrictions     []AxisDiff        `json:"topFrictions"`
}

// computeQuizSummary compares the two participants' accumulated scores.
// Returns nil for any other participant count (solo runs have no summary).
// The normalization constant is the theoretical worst case for this quiz
// length, not the observed answers, so percentages are comparable across
// runs.
func computeQuizSummary(scores map[string]map[quiz.Axis]int, clientIDs []string) *QuizSummary {
	if len(clientIDs) != 2 {
		return nil
	}
	sa, sb := scores[clientIDs[0]], scores[clientIDs[1]]

	axisDiffs := make(map[quiz.Axis]int, len(quiz.Axes))
	diffs := make([]AxisDiff, 0, len(quiz.Axes))
	sum := 0
	for _, ax := range quiz.Axes {
		d := sa[ax] - sb[ax]
		if d < 0 {
			d = -d
		}
		axisDiffs[ax] = d
		diffs = append(diffs, AxisDiff{AxisID: ax, Diff: d})
		sum += d
	}

	asc := make([]AxisDiff, len(diffs))
	copy(asc, diffs)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Diff < asc[j].Diff })

	desc := make([]AxisDiff, len(diffs))
	copy(desc, diffs)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Diff > desc[j].Diff })

	maxTotal := quiz.QuestionsPerRun * quiz.MaxWeightSwing * len(quiz.Axes)
	percent := 100 - int(math.Round(float64(sum)/float64(maxTotal)*100))
	percent = min(100, max(0, percent))

	return &QuizSummary{
		AgreementPercent: percent,
		AxisDiffs:        axisDiffs,
		TopMatches:       asc[:summaryTopN],
		TopFrictions:     desc[:summaryTopN],
	}
}

// SummaryProjection is the exact input set for the AI narrative. Its JSON
// encoding is deterministic (slices keep order, Go marshals map keys
// sorted), so the hash changes exactly when scores or the question set do.
type SummaryProjection struct {
	QuizID      string                       `json:"quizId"`
	QuizVersion int                          `json:"quizVersion"`
	PackID      string                       `json:"packId"`
	QuestionIDs []string                     `json:"questionIds"`
	Scores      map[string]map[quiz.Axis]int `json:"scoresByClientId"`
	Summary     *QuizSummary                 `json:"summary"`
}

// Hash returns the sha256 hex of the projection's JSON encoding.
func (p SummaryProjection) Hash() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// projectionLocked snapshots the projection; caller holds rm.mu.
func projectionLocked(rm *Room, st *QuizState) SummaryProjection {
	scores := make(map[string]map[quiz.Axis]int, len(st.Scores))
	for cid, axes := range st.Scores {
		cp := make(map[quiz.Axis]int, len(axes))
		for ax, v := range axes {
			cp[ax] = v
		}
		scores[cid] = cp
	}
	return SummaryProjection{
		QuizID:      st.QuizID,
		QuizVersion: st.QuizVersion,
		PackID:      st.PackID,
		QuestionIDs: append([]string(nil), st.QuestionIDs...),
		Scores:      scores,
		Summary:     st.Summary,
	}
}
