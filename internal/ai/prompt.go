package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mothman910/decyzjomat/internal/quiz"
	"github.com/Mothman910/decyzjomat/internal/room"
)

// BuildSummaryPrompt renders a completed quiz projection into the prompt
// for the narrative summary. The text is fully determined by the
// projection, so equal projections produce equal prompts.
func BuildSummaryPrompt(p room.SummaryProjection) string {
	clientIDs := make([]string, 0, len(p.Scores))
	for cid := range p.Scores {
		clientIDs = append(clientIDs, cid)
	}
	sort.Strings(clientIDs)

	var sb strings.Builder
	sb.WriteString("You are a warm, witty relationship commentator. ")
	sb.WriteString("Two people just finished a lifestyle compatibility quiz (pack: ")
	sb.WriteString(quiz.PackLabel(p.PackID))
	sb.WriteString("). Write a short narrative summary of how their tastes fit together.\n\n")

	sb.WriteString("Their scores per taste dimension (negative and positive are the two poles):\n")
	for i, cid := range clientIDs {
		fmt.Fprintf(&sb, "Person %c:\n", 'A'+rune(i))
		for _, ax := range quiz.Axes {
			fmt.Fprintf(&sb, "  %s: %d\n", quiz.AxisLabel(ax), p.Scores[cid][ax])
		}
	}

	if s := p.Summary; s != nil {
		fmt.Fprintf(&sb, "\nOverall agreement: %d%%.\n", s.AgreementPercent)
		sb.WriteString("They align most on: ")
		sb.WriteString(joinAxes(s.TopMatches))
		sb.WriteString(".\nThey differ most on: ")
		sb.WriteString(joinAxes(s.TopFrictions))
		sb.WriteString(".\n")
	}

	sb.WriteString("\nWrite 3 short paragraphs in English: what they share, where sparks or friction may fly, ")
	sb.WriteString("and one concrete date or home idea that suits both. ")
	sb.WriteString("Speak to them as \"you two\". No lists, no headings, no mention of scores or percentages as numbers.")
	return sb.String()
}

func joinAxes(diffs []room.AxisDiff) string {
	labels := make([]string, len(diffs))
	for i, d := range diffs {
		labels[i] = quiz.AxisLabel(d.AxisID)
	}
	return strings.Join(labels, ", ")
}
