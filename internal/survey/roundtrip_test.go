package survey

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Serializing a question and reading it back must preserve identity, type,
// scoring fields, and logic fields exactly; the engine depends on stored
// documents surviving round trips without drift.
func TestQuestionRoundTrip(t *testing.T) {
	no := false
	orig := Question{
		ID:              "q7",
		Type:            TypeCheckbox,
		Title:           "Which features do you use?",
		Options:         []string{"Reports", "Exports", "Alerts"},
		MinSelections:   1,
		MaxSelections:   2,
		Scorable:        &no,
		ScoreWeight:     2.5,
		ScoringCategory: "adoption",
		OptionScores:    map[string]float64{"Reports": 1, "Exports": 2, "Alerts": -1},
		LogicRules: []LogicRule{
			{
				ID: "r1",
				Conditions: []LogicCondition{
					{QuestionID: "q2", Operator: OpEquals, Value: json.RawMessage(`"Other"`)},
					{QuestionID: "q3", Operator: OpBetween, Value: json.RawMessage(`{"min":1,"max":3}`)},
				},
				ConditionLogic:   LogicOr,
				Action:           ActionSkip,
				TargetQuestionID: "q9",
			},
		},
		LegacySkip: &LegacySkip{QuestionID: "q1", Answer: json.RawMessage(`"No"`)},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Question
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Fatalf("round trip changed question (-want +got):\n%s", diff)
	}
}

func TestScoreConfigRoundTrip(t *testing.T) {
	orig := ScoreConfig{
		Enabled:    true,
		Categories: []Category{{ID: "eng", Name: "Engagement"}},
		ScoreRanges: []ScoreRange{
			{ID: "lo", Min: 0, Max: 49, Label: "Low"},
			{ID: "hi", Min: 50, Max: 100, Label: "High"},
		},
		ResultsScreen: &ResultsScreen{
			ScoreRanges: []ScoreRange{{ID: "all", Min: 0, Max: 100, Label: "Done"}},
		},
	}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got ScoreConfig
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Fatalf("round trip changed config (-want +got):\n%s", diff)
	}
}
