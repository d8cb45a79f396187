package survey

import "encoding/json"

// LegacySkip is the deprecated single-condition skip shape: hide the owning
// question when questionId's answer equals answer. New surveys author
// LogicRules instead; this only survives in stored documents.
type LegacySkip struct {
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
}

// FromLegacySkip converts the deprecated shape into a unified rule targeting
// the question that carried it. This conversion is the only place the old and
// new formats interact; everything downstream sees LogicRule only.
func FromLegacySkip(targetQuestionID string, l LegacySkip) LogicRule {
	return LogicRule{
		ID: "legacy-skip-" + targetQuestionID,
		Conditions: []LogicCondition{{
			QuestionID: l.QuestionID,
			Operator:   OpEquals,
			Value:      l.Answer,
		}},
		ConditionLogic:   LogicAnd,
		Action:           ActionSkip,
		TargetQuestionID: targetQuestionID,
	}
}

// EffectiveRules returns the question's rules with any legacy skip shape
// normalized and appended after the declared rules, preserving
// first-rule-wins order for the modern format.
func (q Question) EffectiveRules() []LogicRule {
	if q.LegacySkip == nil {
		return q.LogicRules
	}
	out := make([]LogicRule, 0, len(q.LogicRules)+1)
	out = append(out, q.LogicRules...)
	out = append(out, FromLegacySkip(q.ID, *q.LegacySkip))
	return out
}
