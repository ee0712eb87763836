// Package quiz defines the compatibility quiz content model: the fixed set
// of scoring axes, questions with weighted options, and the in-memory bank
// the server loads once at boot. It has zero external dependencies.
package quiz

import "fmt"

const (
	// ID and Version identify the quiz content. Both feed the seeded
	// question selection and the AI summary cache key, so bumping Version
	// invalidates cached narratives for new rooms.
	ID      = "duet-v1"
	Version = 1

	// QuestionsPerRun is the fixed session length. A pack must contain at
	// least this many questions to be playable.
	QuestionsPerRun = 20

	// MaxWeightSwing is the largest per-question disagreement a single
	// axis can accumulate (one client at -3, the other at +3).
	MaxWeightSwing = 6
)

// Axis is one of the fixed scoring dimensions. Declaration order in Axes is
// the tie-break order for summary rankings.
type Axis string

const (
	AxisModernClassic     Axis = "modernClassic"
	AxisMinimalMaximal    Axis = "minimalMaximal"
	AxisWarmCool          Axis = "warmCool"
	AxisNaturalIndustrial Axis = "naturalIndustrial"
	AxisBoldSafe          Axis = "boldSafe"
	AxisBudgetPremium     Axis = "budgetPremium"
	AxisPlanSpontaneous   Axis = "planSpontaneous"
	AxisSocialCozy        Axis = "socialCozy"
)

// Axes lists every axis in declaration order.
var Axes = []Axis{
	AxisModernClassic,
	AxisMinimalMaximal,
	AxisWarmCool,
	AxisNaturalIndustrial,
	AxisBoldSafe,
	AxisBudgetPremium,
	AxisPlanSpontaneous,
	AxisSocialCozy,
}

var axisLabels = map[Axis]string{
	AxisModernClassic:     "modern vs classic",
	AxisMinimalMaximal:    "minimal vs maximal",
	AxisWarmCool:          "warm vs cool",
	AxisNaturalIndustrial: "natural vs industrial",
	AxisBoldSafe:          "bold vs safe",
	AxisBudgetPremium:     "budget vs premium",
	AxisPlanSpontaneous:   "planned vs spontaneous",
	AxisSocialCozy:        "social vs cozy",
}

// AxisLabel returns a human-readable name for prompts and summaries.
func AxisLabel(a Axis) string {
	if l, ok := axisLabels[a]; ok {
		return l
	}
	return string(a)
}

// ValidAxis reports whether a is one of the declared axes.
func ValidAxis(a Axis) bool {
	_, ok := axisLabels[a]
	return ok
}

// Pack identifiers. PackMix is virtual: it pools every authored pack.
const (
	PackInteriors  = "interiors"
	PackLifestyle  = "lifestyle"
	PackFood       = "food"
	PackActivities = "activities"
	PackMix        = "mix"
)

type Pack struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Packs lists the selectable packs.
var Packs = []Pack{
	{ID: PackInteriors, Label: "Interiors"},
	{ID: PackLifestyle, Label: "Lifestyle"},
	{ID: PackFood, Label: "Food"},
	{ID: PackActivities, Label: "Activities & downtime"},
	{ID: PackMix, Label: "Mix"},
}

// ValidPack reports whether id is a selectable pack.
func ValidPack(id string) bool {
	for _, p := range Packs {
		if p.ID == id {
			return true
		}
	}
	return false
}

// PackLabel returns the display label for a pack id.
func PackLabel(id string) string {
	for _, p := range Packs {
		if p.ID == id {
			return p.Label
		}
	}
	return id
}

// Option is a single answer. Weights is a partial map: unlisted axes
// contribute 0 to the client's score.
type Option struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Weights map[Axis]int `json:"weights,omitempty"`
}

type Question struct {
	ID      string   `json:"id"`
	PackID  string   `json:"packId"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option returns the option with the given id, if present.
func (q Question) Option(optionID string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// Bank is the loaded question set, indexed by id and by pack. Question
// order within a pack follows authoring order, which keeps pool order (and
// therefore seeded selection) stable across runs.
type Bank struct {
	ordered []Question
	byID    map[string]Question
	byPack  map[string][]Question
}

// NewBank validates and indexes questions.
func NewBank(questions []Question) (*Bank, error) {
	b := &Bank{
		ordered: questions,
		byID:    make(map[string]Question, len(questions)),
		byPack:  make(map[string][]Question),
	}
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id in pack %q", q.PackID)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.PackID == PackMix || !ValidPack(q.PackID) {
			return nil, fmt.Errorf("question %q: invalid pack %q", q.ID, q.PackID)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %q: needs at least 2 options", q.ID)
		}
		for _, o := range q.Options {
			for ax := range o.Weights {
				if !ValidAxis(ax) {
					return nil, fmt.Errorf("question %q option %q: unknown axis %q", q.ID, o.ID, ax)
				}
			}
		}
		b.byID[q.ID] = q
		b.byPack[q.PackID] = append(b.byPack[q.PackID], q)
	}
	return b, nil
}

// ByID looks up a question.
func (b *Bank) ByID(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// PoolIDs returns the ordered candidate question ids for a pack. PackMix
// pools all questions in global authoring order.
func (b *Bank) PoolIDs(packID string) []string {
	var pool []Question
	if packID == PackMix {
		pool = b.ordered
	} else {
		pool = b.byPack[packID]
	}
	ids := make([]string, len(pool))
	for i, q := range pool {
		ids[i] = q.ID
	}
	return ids
}

// Len returns the total number of questions in the bank.
func (b *Bank) Len() int { return len(b.ordered) }
