package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpulse/internal/survey"
)

func reasonsFor(problems []Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Reason
	}
	return out
}

func TestRuleProblems_CleanSurvey(t *testing.T) {
	qs := linearSurvey(map[string][]survey.LogicRule{
		"q2": {skipRule("r1", "q2", `"Other"`, "q3")},
	})
	assert.Empty(t, RuleProblems(qs))
}

func TestRuleProblems_ActionShape(t *testing.T) {
	qs := linearSurvey(map[string][]survey.LogicRule{
		"q1": {
			{ID: "end-with-target", Conditions: []survey.LogicCondition{cond("q1", survey.OpAnswered, "")},
				ConditionLogic: survey.LogicAnd, Action: survey.ActionEnd, TargetQuestionID: "q2"},
			{ID: "skip-no-target", Conditions: []survey.LogicCondition{cond("q1", survey.OpAnswered, "")},
				ConditionLogic: survey.LogicAnd, Action: survey.ActionSkip},
			{ID: "jump-ghost", Conditions: []survey.LogicCondition{cond("q1", survey.OpAnswered, "")},
				ConditionLogic: survey.LogicAnd, Action: survey.ActionJump, TargetQuestionID: "ghost"},
			{ID: "bad-action", Conditions: []survey.LogicCondition{cond("q1", survey.OpAnswered, "")},
				ConditionLogic: survey.LogicAnd, Action: survey.RuleAction("teleport")},
		},
	})

	reasons := reasonsFor(RuleProblems(qs))
	assert.Contains(t, reasons, "end rule must not carry a target question")
	assert.Contains(t, reasons, "skip rule requires a target question")
	assert.Contains(t, reasons, "target question ghost does not exist")
	assert.Contains(t, reasons, `unknown action "teleport"`)
}

func TestRuleProblems_Conditions(t *testing.T) {
	qs := linearSurvey(map[string][]survey.LogicRule{
		"q1": {
			{ID: "empty", ConditionLogic: survey.LogicAnd, Action: survey.ActionEnd},
			{ID: "bad-logic", Conditions: []survey.LogicCondition{cond("q1", survey.OpAnswered, "")},
				ConditionLogic: "xor", Action: survey.ActionEnd},
			andRuleWith("unknown-q", survey.ActionEnd, "", cond("ghost", survey.OpAnswered, "")),
			// gt is numeric-only; q1 is free text.
			andRuleWith("bad-op", survey.ActionEnd, "", cond("q1", survey.OpGT, `3`)),
		},
	})

	reasons := reasonsFor(RuleProblems(qs))
	assert.Contains(t, reasons, "rule has no conditions")
	assert.Contains(t, reasons, `unknown condition logic "xor"`)
	assert.Contains(t, reasons, "condition references unknown question ghost")
	assert.Contains(t, reasons, "operator gt is not valid for short_text questions")
}

func TestRuleProblems_ValueShapes(t *testing.T) {
	tests := []struct {
		name string
		cond survey.LogicCondition
		want string
	}{
		{"unary with value", cond("q3", survey.OpAnswered, `1`), "answered takes no value"},
		{"comparison non-numeric", cond("q3", survey.OpGT, `"high"`), "gt requires a numeric value"},
		{"between missing max", cond("q3", survey.OpBetween, `{"min": 2}`), "between requires a {min,max} value"},
		{"between inverted", cond("q3", survey.OpBetween, `{"min": 4, "max": 2}`), "between range is inverted"},
		{"equals without value", cond("q2", survey.OpEquals, ""), "equals requires a value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := linearSurvey(map[string][]survey.LogicRule{
				"q1": {andRuleWith("r", survey.ActionEnd, "", tt.cond)},
			})
			problems := RuleProblems(qs)
			require.Len(t, problems, 1)
			assert.Equal(t, tt.want, problems[0].Reason)
		})
	}
}

func TestRuleProblems_MembershipValue(t *testing.T) {
	qs := []survey.Question{
		{ID: "q1", Type: survey.TypeCheckbox, Options: []string{"a", "b"}},
		{ID: "q2", Type: survey.TypeShortText, LogicRules: []survey.LogicRule{
			andRuleWith("r", survey.ActionEnd, "", cond("q1", survey.OpIncludesAny, `[]`)),
		}},
	}
	problems := RuleProblems(qs)
	require.Len(t, problems, 1)
	assert.Equal(t, "includes_any requires a non-empty string array", problems[0].Reason)
}

func TestRuleProblems_LegacySkipIsChecked(t *testing.T) {
	qs := linearSurvey(nil)
	qs[2].LegacySkip = &survey.LegacySkip{QuestionID: "ghost", Answer: raw(`"x"`)}

	problems := RuleProblems(qs)
	require.Len(t, problems, 1)
	assert.Equal(t, "q3", problems[0].QuestionID)
	assert.Equal(t, "condition references unknown question ghost", problems[0].Reason)
}

func andRuleWith(id string, action survey.RuleAction, target string, conds ...survey.LogicCondition) survey.LogicRule {
	return survey.LogicRule{
		ID:             id,
		Conditions:     conds,
		ConditionLogic: survey.LogicAnd,
		Action:         action, TargetQuestionID: target,
	}
}
