package quiz

import (
	"fmt"
	"testing"
)

func validQuestion(id, packID string) Question {
	return Question{
		ID:     id,
		PackID: packID,
		Prompt: "Pick one",
		Options: []Option{
			{ID: "a", Label: "A", Weights: map[Axis]int{AxisWarmCool: 1}},
			{ID: "b", Label: "B", Weights: map[Axis]int{AxisWarmCool: -1}},
		},
	}
}

func TestNewBankValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   bool
	}{
		{
			name:      "valid",
			questions: []Question{validQuestion("q1", PackFood), validQuestion("q2", PackLifestyle)},
		},
		{
			name:      "duplicate id",
			questions: []Question{validQuestion("q1", PackFood), validQuestion("q1", PackFood)},
			wantErr:   true,
		},
		{
			name:      "invalid pack",
			questions: []Question{validQuestion("q1", "unknown")},
			wantErr:   true,
		},
		{
			name:      "mix is not an authorable pack",
			questions: []Question{validQuestion("q1", PackMix)},
			wantErr:   true,
		},
		{
			name: "too few options",
			questions: []Question{{
				ID:      "q1",
				PackID:  PackFood,
				Prompt:  "Pick one",
				Options: []Option{{ID: "a", Label: "A"}},
			}},
			wantErr: true,
		},
		{
			name: "invalid axis in weights",
			questions: []Question{{
				ID:     "q1",
				PackID: PackFood,
				Prompt: "Pick one",
				Options: []Option{
					{ID: "a", Label: "A", Weights: map[Axis]int{"sideways": 1}},
					{ID: "b", Label: "B"},
				},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.questions)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBank() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBankLookups(t *testing.T) {
	var questions []Question
	for i := 0; i < 3; i++ {
		questions = append(questions, validQuestion(fmt.Sprintf("f%d", i), PackFood))
	}
	for i := 0; i < 2; i++ {
		questions = append(questions, validQuestion(fmt.Sprintf("l%d", i), PackLifestyle))
	}

	bank, err := NewBank(questions)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	if bank.Len() != 5 {
		t.Errorf("Len() = %d, want 5", bank.Len())
	}
	if _, ok := bank.ByID("f1"); !ok {
		t.Error("ByID(f1) not found")
	}
	if _, ok := bank.ByID("missing"); ok {
		t.Error("ByID(missing) unexpectedly found")
	}

	food := bank.PoolIDs(PackFood)
	if len(food) != 3 || food[0] != "f0" {
		t.Errorf("PoolIDs(food) = %v", food)
	}

	mix := bank.PoolIDs(PackMix)
	if len(mix) != 5 {
		t.Errorf("PoolIDs(mix) = %v, want all 5", mix)
	}
	// Mix preserves authored order across packs.
	want := []string{"f0", "f1", "f2", "l0", "l1"}
	for i, id := range want {
		if mix[i] != id {
			t.Fatalf("mix[%d] = %s, want %s", i, mix[i], id)
		}
	}
}

func TestQuestionOption(t *testing.T) {
	q := validQuestion("q1", PackFood)

	opt, ok := q.Option("b")
	if !ok || opt.Label != "B" {
		t.Errorf("Option(b) = %+v, %v", opt, ok)
	}
	if _, ok := q.Option("z"); ok {
		t.Error("Option(z) unexpectedly found")
	}
}

func TestAxes(t *testing.T) {
	if len(Axes) != 8 {
		t.Fatalf("len(Axes) = %d, want 8", len(Axes))
	}
	for _, ax := range Axes {
		if !ValidAxis(ax) {
			t.Errorf("ValidAxis(%s) = false", ax)
		}
		if AxisLabel(ax) == string(ax) {
			t.Errorf("AxisLabel(%s) has no label", ax)
		}
	}
	if ValidAxis("diagonal") {
		t.Error("ValidAxis(diagonal) = true")
	}
}

func TestValidPack(t *testing.T) {
	for _, p := range Packs {
		if !ValidPack(p.ID) {
			t.Errorf("ValidPack(%s) = false", p.ID)
		}
	}
	if ValidPack("cars") {
		t.Error("ValidPack(cars) = true")
	}
}
