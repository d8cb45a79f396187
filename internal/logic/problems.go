package logic

import (
	"encoding/json"
	"fmt"

	"formpulse/internal/answer"
	"formpulse/internal/survey"
)

// Problem is one authoring-time rule configuration error. These are surfaced
// to survey authors before publish; production evaluation only logs and
// skips, so catching problems here is what keeps live surveys clean.
type Problem struct {
	QuestionID string `json:"questionId"`
	RuleID     string `json:"ruleId"`
	Reason     string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("question %s rule %s: %s", p.QuestionID, p.RuleID, p.Reason)
}

// RuleProblems validates every rule attached to the survey's questions,
// legacy skip shapes included.
func RuleProblems(questions []survey.Question) []Problem {
	index := make(map[string]survey.Question, len(questions))
	for _, q := range questions {
		index[q.ID] = q
	}

	var problems []Problem
	report := func(qID, ruleID, reason string) {
		problems = append(problems, Problem{QuestionID: qID, RuleID: ruleID, Reason: reason})
	}

	for _, q := range questions {
		for _, rule := range q.EffectiveRules() {
			if len(rule.Conditions) == 0 {
				report(q.ID, rule.ID, "rule has no conditions")
			}
			if rule.ConditionLogic != survey.LogicAnd && rule.ConditionLogic != survey.LogicOr {
				report(q.ID, rule.ID, fmt.Sprintf("unknown condition logic %q", rule.ConditionLogic))
			}
			checkAction(q, rule, index, report)
			for _, cond := range rule.Conditions {
				checkCondition(q, rule, cond, index, report)
			}
		}
	}
	return problems
}

func checkAction(q survey.Question, rule survey.LogicRule, index map[string]survey.Question, report func(string, string, string)) {
	switch rule.Action {
	case survey.ActionEnd:
		if rule.TargetQuestionID != "" {
			report(q.ID, rule.ID, "end rule must not carry a target question")
		}
	case survey.ActionSkip, survey.ActionShow, survey.ActionJump:
		if rule.TargetQuestionID == "" {
			report(q.ID, rule.ID, fmt.Sprintf("%s rule requires a target question", rule.Action))
			return
		}
		if _, ok := index[rule.TargetQuestionID]; !ok {
			report(q.ID, rule.ID, fmt.Sprintf("target question %s does not exist", rule.TargetQuestionID))
		}
	default:
		report(q.ID, rule.ID, fmt.Sprintf("unknown action %q", rule.Action))
	}
}

func checkCondition(q survey.Question, rule survey.LogicRule, cond survey.LogicCondition, index map[string]survey.Question, report func(string, string, string)) {
	target, ok := index[cond.QuestionID]
	if !ok {
		report(q.ID, rule.ID, fmt.Sprintf("condition references unknown question %s", cond.QuestionID))
		return
	}
	if !survey.OperatorAllowed(target.Type, cond.Operator) {
		report(q.ID, rule.ID,
			fmt.Sprintf("operator %s is not valid for %s questions", cond.Operator, target.Type))
		return
	}
	if reason := valueShapeProblem(cond.Operator, cond.Value); reason != "" {
		report(q.ID, rule.ID, reason)
	}
}

// valueShapeProblem checks the condition value against the operator's
// expected shape: absent for unary operators, scalar for comparisons,
// {min,max} for between, a string array for the membership operators.
func valueShapeProblem(op survey.Operator, value json.RawMessage) string {
	switch op {
	case survey.OpAnswered, survey.OpNotAnswered, survey.OpIsTrue, survey.OpIsFalse:
		if !answer.IsNull(value) {
			return fmt.Sprintf("%s takes no value", op)
		}
	case survey.OpGT, survey.OpLT, survey.OpGTE, survey.OpLTE:
		if _, st := answer.Number(value); st != answer.StatusAnswered {
			return fmt.Sprintf("%s requires a numeric value", op)
		}
	case survey.OpBetween:
		var bounds struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		}
		if err := json.Unmarshal(value, &bounds); err != nil || bounds.Min == nil || bounds.Max == nil {
			return "between requires a {min,max} value"
		}
		if *bounds.Min > *bounds.Max {
			return "between range is inverted"
		}
	case survey.OpIncludesAny, survey.OpIncludesAll:
		if _, st := answer.TextList(value); st != answer.StatusAnswered {
			return fmt.Sprintf("%s requires a non-empty string array", op)
		}
	case survey.OpEquals, survey.OpNotEquals, survey.OpContains:
		if answer.IsNull(value) {
			return fmt.Sprintf("%s requires a value", op)
		}
	}
	return ""
}
