package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"formpulse/internal/answer"
	"formpulse/internal/survey"
)

var (
	ErrUnknownQuestion    = errors.New("condition references unknown question")
	ErrOperatorNotAllowed = errors.New("operator not allowed for question type")
	ErrBadConditionValue  = errors.New("condition value does not match operator")
)

// Evaluator evaluates logic rules against a response snapshot. It assumes
// rules were validated at authoring time: a rule it cannot resolve is logged
// and treated as non-matching rather than halting the survey.
type Evaluator struct {
	questions map[string]survey.Question
	log       *zap.Logger
}

// NewEvaluator indexes the survey's questions. A nil logger is replaced with
// a no-op one.
func NewEvaluator(questions []survey.Question, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	idx := make(map[string]survey.Question, len(questions))
	for _, q := range questions {
		idx[q.ID] = q
	}
	return &Evaluator{questions: idx, log: log}
}

// EvaluateRule combines the rule's condition results under its and/or logic.
// A rule with an unresolvable condition evaluates false; a rule with zero
// true conditions under "or" evaluates false.
func (e *Evaluator) EvaluateRule(rule survey.LogicRule, responses survey.ResponseSet) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	anyTrue := false
	for _, cond := range rule.Conditions {
		ok, err := e.evalCondition(cond, responses)
		if err != nil {
			e.log.Warn("skipping unresolvable logic rule",
				zap.String("rule", rule.ID),
				zap.String("question", cond.QuestionID),
				zap.String("operator", string(cond.Operator)),
				zap.Error(err))
			return false
		}
		if rule.ConditionLogic == survey.LogicOr {
			anyTrue = anyTrue || ok
			continue
		}
		if !ok {
			return false
		}
	}
	if rule.ConditionLogic == survey.LogicOr {
		return anyTrue
	}
	return true
}

func (e *Evaluator) evalCondition(c survey.LogicCondition, responses survey.ResponseSet) (bool, error) {
	q, ok := e.questions[c.QuestionID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, c.QuestionID)
	}
	if !survey.OperatorAllowed(q.Type, c.Operator) {
		return false, fmt.Errorf("%w: %s on %s", ErrOperatorNotAllowed, c.Operator, q.Type)
	}

	raw := responses[c.QuestionID]
	shape := survey.AnswerShapeFor(q.Type)

	switch c.Operator {
	case survey.OpAnswered:
		return isAnswered(shape, raw), nil
	case survey.OpNotAnswered:
		return !isAnswered(shape, raw), nil
	case survey.OpIsTrue, survey.OpIsFalse:
		b, st := answer.Bool(raw)
		if st != answer.StatusAnswered {
			return false, nil
		}
		return b == (c.Operator == survey.OpIsTrue), nil
	case survey.OpEquals, survey.OpNotEquals:
		eq, err := e.equalsCondition(shape, raw, c.Value)
		if err != nil {
			return false, err
		}
		if c.Operator == survey.OpNotEquals {
			// not_equals still requires an answer to compare against.
			if !isAnswered(shape, raw) {
				return false, nil
			}
			return !eq, nil
		}
		return eq, nil
	case survey.OpGT, survey.OpLT, survey.OpGTE, survey.OpLTE:
		return compareNumeric(c.Operator, raw, c.Value)
	case survey.OpBetween:
		return betweenCondition(raw, c.Value)
	case survey.OpContains:
		return containsCondition(shape, raw, c.Value)
	case survey.OpIncludesAny, survey.OpIncludesAll:
		return membershipCondition(c.Operator, raw, c.Value)
	default:
		return false, fmt.Errorf("%w: unknown operator %s", ErrOperatorNotAllowed, c.Operator)
	}
}

func isAnswered(shape survey.AnswerShape, raw json.RawMessage) bool {
	var st answer.Status
	switch shape {
	case survey.ShapeText:
		_, st = answer.Text(raw)
	case survey.ShapeNumber:
		_, st = answer.Number(raw)
	case survey.ShapeBool:
		_, st = answer.Bool(raw)
	case survey.ShapeTextList:
		_, st = answer.TextList(raw)
	case survey.ShapeTextOrList:
		_, st = answer.TextOrList(raw)
	case survey.ShapeRowMap:
		_, st = answer.RowMap(raw)
	case survey.ShapeRowListMap:
		_, st = answer.RowListMap(raw)
	case survey.ShapeAllocation:
		_, st = answer.Allocation(raw)
	default:
		return false
	}
	return st == answer.StatusAnswered
}

// equalsCondition compares per answer shape. Numeric targets coerce numeric
// strings on both sides so `"4" equals 4` holds for rating widgets.
func (e *Evaluator) equalsCondition(shape survey.AnswerShape, raw, value json.RawMessage) (bool, error) {
	switch shape {
	case survey.ShapeNumber:
		want, st := answer.Number(value)
		if st != answer.StatusAnswered {
			return false, fmt.Errorf("%w: equals needs a numeric value", ErrBadConditionValue)
		}
		got, st := answer.Number(raw)
		return st == answer.StatusAnswered && got == want, nil
	case survey.ShapeBool:
		want, st := answer.Bool(value)
		if st != answer.StatusAnswered {
			return false, fmt.Errorf("%w: equals needs a boolean value", ErrBadConditionValue)
		}
		got, st := answer.Bool(raw)
		return st == answer.StatusAnswered && got == want, nil
	case survey.ShapeTextOrList:
		want, err := conditionText(value)
		if err != nil {
			return false, err
		}
		got, st := answer.TextOrList(raw)
		return st == answer.StatusAnswered && len(got) == 1 && got[0] == want, nil
	default:
		want, err := conditionText(value)
		if err != nil {
			return false, err
		}
		got, st := answer.Text(raw)
		return st == answer.StatusAnswered && got == want, nil
	}
}

func compareNumeric(op survey.Operator, raw, value json.RawMessage) (bool, error) {
	want, st := answer.Number(value)
	if st != answer.StatusAnswered {
		return false, fmt.Errorf("%w: %s needs a numeric value", ErrBadConditionValue, op)
	}
	got, st := answer.Number(raw)
	if st != answer.StatusAnswered {
		return false, nil
	}
	switch op {
	case survey.OpGT:
		return got > want, nil
	case survey.OpLT:
		return got < want, nil
	case survey.OpGTE:
		return got >= want, nil
	default:
		return got <= want, nil
	}
}

func betweenCondition(raw, value json.RawMessage) (bool, error) {
	var bounds struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}
	if err := json.Unmarshal(value, &bounds); err != nil || bounds.Min == nil || bounds.Max == nil {
		return false, fmt.Errorf("%w: between needs {min,max}", ErrBadConditionValue)
	}
	got, st := answer.Number(raw)
	if st != answer.StatusAnswered {
		return false, nil
	}
	return got >= *bounds.Min && got <= *bounds.Max, nil
}

func containsCondition(shape survey.AnswerShape, raw, value json.RawMessage) (bool, error) {
	want, err := conditionText(value)
	if err != nil {
		return false, err
	}
	switch shape {
	case survey.ShapeTextList, survey.ShapeTextOrList:
		got, st := answer.TextOrList(raw)
		if st != answer.StatusAnswered {
			return false, nil
		}
		for _, v := range got {
			if v == want {
				return true, nil
			}
		}
		return false, nil
	default:
		got, st := answer.Text(raw)
		if st != answer.StatusAnswered {
			return false, nil
		}
		return strings.Contains(got, want), nil
	}
}

func membershipCondition(op survey.Operator, raw, value json.RawMessage) (bool, error) {
	want, st := answer.TextList(value)
	if st != answer.StatusAnswered {
		return false, fmt.Errorf("%w: %s needs a string array", ErrBadConditionValue, op)
	}
	got, gotSt := answer.TextOrList(raw)
	if gotSt != answer.StatusAnswered {
		return false, nil
	}
	selected := make(map[string]struct{}, len(got))
	for _, v := range got {
		selected[v] = struct{}{}
	}
	if op == survey.OpIncludesAny {
		for _, v := range want {
			if _, ok := selected[v]; ok {
				return true, nil
			}
		}
		return false, nil
	}
	for _, v := range want {
		if _, ok := selected[v]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// conditionText accepts a string or numeric scalar and returns its text form.
func conditionText(value json.RawMessage) (string, error) {
	if s, st := answer.Text(value); st == answer.StatusAnswered {
		return s, nil
	}
	if n, st := answer.Number(value); st == answer.StatusAnswered {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: expected a scalar", ErrBadConditionValue)
}
