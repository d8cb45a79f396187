package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpulse/internal/survey"
)

func linearSurvey(rules map[string][]survey.LogicRule) []survey.Question {
	qs := []survey.Question{
		{ID: "q1", Type: survey.TypeShortText},
		{ID: "q2", Type: survey.TypeMultipleChoice, Options: []string{"Red", "Other"}},
		{ID: "q3", Type: survey.TypeRating, RatingScale: 5},
		{ID: "q4", Type: survey.TypeShortText},
	}
	for i := range qs {
		qs[i].LogicRules = rules[qs[i].ID]
	}
	return qs
}

func skipRule(id, condQ, condVal, target string) survey.LogicRule {
	return survey.LogicRule{
		ID:               id,
		Conditions:       []survey.LogicCondition{{QuestionID: condQ, Operator: survey.OpEquals, Value: raw(condVal)}},
		ConditionLogic:   survey.LogicAnd,
		Action:           survey.ActionSkip,
		TargetQuestionID: target,
	}
}

func TestNavigator_LinearWithoutRules(t *testing.T) {
	nav := NewNavigator(linearSurvey(nil), nil)
	rs := survey.ResponseSet{}

	d := nav.First(rs)
	assert.Equal(t, "q1", d.NextID)
	d = nav.Next("q1", rs)
	assert.Equal(t, "q2", d.NextID)
	d = nav.Next("q4", rs)
	assert.True(t, d.Ended)
}

// A matching skip rule hides its target from the traversal sequence.
func TestNavigator_SkipRule(t *testing.T) {
	nav := NewNavigator(linearSurvey(map[string][]survey.LogicRule{
		"q2": {skipRule("skip-q3", "q2", `"Other"`, "q3")},
	}), nil)

	t.Run("condition met hides q3", func(t *testing.T) {
		rs := survey.ResponseSet{"q2": raw(`"Other"`)}
		d := nav.Next("q2", rs)
		require.False(t, d.Ended)
		assert.Equal(t, "q4", d.NextID)
	})
	t.Run("condition not met keeps q3", func(t *testing.T) {
		rs := survey.ResponseSet{"q2": raw(`"Red"`)}
		d := nav.Next("q2", rs)
		assert.Equal(t, "q3", d.NextID)
	})
}

func TestNavigator_JumpRedirectsNonAdjacent(t *testing.T) {
	nav := NewNavigator(linearSurvey(map[string][]survey.LogicRule{
		"q1": {{
			ID:               "jump-to-q4",
			Conditions:       []survey.LogicCondition{{QuestionID: "q1", Operator: survey.OpEquals, Value: raw(`"expert"`)}},
			ConditionLogic:   survey.LogicAnd,
			Action:           survey.ActionJump,
			TargetQuestionID: "q4",
		}},
	}), nil)

	d := nav.Next("q1", survey.ResponseSet{"q1": raw(`"expert"`)})
	assert.Equal(t, "q4", d.NextID)
	assert.Equal(t, "jump-to-q4", d.FiredRuleID)

	d = nav.Next("q1", survey.ResponseSet{"q1": raw(`"novice"`)})
	assert.Equal(t, "q2", d.NextID)
}

func TestNavigator_EndTerminatesEarly(t *testing.T) {
	nav := NewNavigator(linearSurvey(map[string][]survey.LogicRule{
		"q2": {{
			ID:             "bail",
			Conditions:     []survey.LogicCondition{{QuestionID: "q2", Operator: survey.OpEquals, Value: raw(`"Red"`)}},
			ConditionLogic: survey.LogicAnd,
			Action:         survey.ActionEnd,
		}},
	}), nil)

	d := nav.Next("q2", survey.ResponseSet{"q2": raw(`"Red"`)})
	assert.True(t, d.Ended)
	assert.Equal(t, "bail", d.FiredRuleID)
}

// Hidden questions stay out of traversal until a show rule reveals them.
func TestNavigator_ShowRevealsHiddenQuestion(t *testing.T) {
	qs := linearSurvey(map[string][]survey.LogicRule{
		"q2": {{
			ID:               "reveal-q3",
			Conditions:       []survey.LogicCondition{{QuestionID: "q2", Operator: survey.OpEquals, Value: raw(`"Other"`)}},
			ConditionLogic:   survey.LogicAnd,
			Action:           survey.ActionShow,
			TargetQuestionID: "q3",
		}},
	})
	qs[2].Hidden = true
	nav := NewNavigator(qs, nil)

	d := nav.Next("q2", survey.ResponseSet{"q2": raw(`"Red"`)})
	assert.Equal(t, "q4", d.NextID, "hidden question should be passed over")

	d = nav.Next("q2", survey.ResponseSet{"q2": raw(`"Other"`)})
	assert.Equal(t, "q3", d.NextID, "show rule should reveal the question")
}

// Rule order is behavior: when several rules on one question match, the
// first declared rule acts and the rest are ignored.
func TestNavigator_FirstMatchingRuleWins(t *testing.T) {
	endRule := survey.LogicRule{
		ID:             "end-second",
		Conditions:     []survey.LogicCondition{{QuestionID: "q2", Operator: survey.OpEquals, Value: raw(`"Other"`)}},
		ConditionLogic: survey.LogicAnd,
		Action:         survey.ActionEnd,
	}
	nav := NewNavigator(linearSurvey(map[string][]survey.LogicRule{
		"q2": {skipRule("skip-first", "q2", `"Other"`, "q3"), endRule},
	}), nil)

	d := nav.Next("q2", survey.ResponseSet{"q2": raw(`"Other"`)})
	require.False(t, d.Ended, "the later end rule must not fire")
	assert.Equal(t, "q4", d.NextID)
	assert.Equal(t, "skip-first", d.FiredRuleID)
}

func TestNavigator_LegacySkipShape(t *testing.T) {
	qs := linearSurvey(nil)
	// Deprecated shape on q3: skip q3 when q1 was answered "skip me".
	qs[2].LegacySkip = &survey.LegacySkip{QuestionID: "q1", Answer: raw(`"skip me"`)}
	nav := NewNavigator(qs, nil)

	d := nav.Next("q2", survey.ResponseSet{"q1": raw(`"skip me"`), "q2": raw(`"Red"`)})
	assert.Equal(t, "q4", d.NextID)

	d = nav.Next("q2", survey.ResponseSet{"q1": raw(`"keep"`), "q2": raw(`"Red"`)})
	assert.Equal(t, "q3", d.NextID)
}

// Skips decided by earlier questions persist for later transitions because
// visibility is recomputed from the whole snapshot each step.
func TestNavigator_SkipPersistsAcrossSteps(t *testing.T) {
	nav := NewNavigator(linearSurvey(map[string][]survey.LogicRule{
		"q1": {skipRule("skip-q4", "q1", `"short"`, "q4")},
	}), nil)
	rs := survey.ResponseSet{"q1": raw(`"short"`), "q2": raw(`"Red"`), "q3": raw(`3`)}

	d := nav.Next("q3", rs)
	assert.True(t, d.Ended, "q4 skipped by q1's rule leaves nothing to present")
}

func TestNavigator_FirstRespectsVisibility(t *testing.T) {
	qs := linearSurvey(nil)
	qs[0].Hidden = true
	nav := NewNavigator(qs, nil)

	d := nav.First(survey.ResponseSet{})
	assert.Equal(t, "q2", d.NextID)
}

func TestNavigator_UnknownAfterIDEnds(t *testing.T) {
	nav := NewNavigator(linearSurvey(nil), nil)
	d := nav.Next("missing", survey.ResponseSet{})
	assert.True(t, d.Ended)
}
