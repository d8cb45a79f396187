package logic

import (
	"go.uber.org/zap"

	"formpulse/internal/survey"
)

// Decision is the outcome of one traversal step.
type Decision struct {
	// NextID is the next question to present; empty when Ended.
	NextID string `json:"nextId,omitempty"`
	Ended  bool   `json:"ended"`
	// FiredRuleID records the rule that redirected traversal, when any did.
	FiredRuleID string `json:"firedRuleId,omitempty"`
}

// Navigator decides the next question during survey traversal. It holds no
// respondent state: every call recomputes from the response snapshot passed
// in, so answers to later questions can never influence earlier decisions
// and the same snapshot always yields the same decision.
type Navigator struct {
	questions []survey.Question
	index     map[string]int
	eval      *Evaluator
}

// NewNavigator builds a navigator over the survey's ordered question list.
func NewNavigator(questions []survey.Question, log *zap.Logger) *Navigator {
	idx := make(map[string]int, len(questions))
	for i, q := range questions {
		idx[q.ID] = i
	}
	return &Navigator{
		questions: questions,
		index:     idx,
		eval:      NewEvaluator(questions, log),
	}
}

// First returns the opening decision before any question was answered.
func (n *Navigator) First(responses survey.ResponseSet) Decision {
	skipped, shown := n.visibility(responses)
	return n.scanFrom(0, skipped, shown, "")
}

// Next returns the decision after afterID was answered. The rules attached
// to afterID are evaluated in declared order and the first matching rule
// wins: end terminates, jump redirects, skip and show adjust visibility for
// the forward scan.
func (n *Navigator) Next(afterID string, responses survey.ResponseSet) Decision {
	pos, ok := n.index[afterID]
	if !ok {
		return Decision{Ended: true}
	}

	skipped, shown := n.visibility(responses)

	start := pos + 1
	firedID := ""
	if rule, fired := n.firstMatch(n.questions[pos], responses); fired {
		firedID = rule.ID
		switch rule.Action {
		case survey.ActionEnd:
			return Decision{Ended: true, FiredRuleID: rule.ID}
		case survey.ActionJump:
			if target, ok := n.index[rule.TargetQuestionID]; ok {
				start = target
			}
		}
	}
	return n.scanFrom(start, skipped, shown, firedID)
}

// visibility computes the skip and show sets from every question's first
// matching rule. Conditions on unanswered questions are simply false, so a
// rule only takes effect once its referenced answers exist in the snapshot.
func (n *Navigator) visibility(responses survey.ResponseSet) (skipped, shown map[string]bool) {
	skipped = make(map[string]bool)
	shown = make(map[string]bool)
	for _, q := range n.questions {
		rule, fired := n.firstMatch(q, responses)
		if !fired {
			continue
		}
		switch rule.Action {
		case survey.ActionSkip:
			skipped[rule.TargetQuestionID] = true
		case survey.ActionShow:
			shown[rule.TargetQuestionID] = true
		}
	}
	return skipped, shown
}

// firstMatch returns the first rule in declared order whose conditions hold.
// Rule order is load-bearing: reordering rules changes survey behavior.
func (n *Navigator) firstMatch(q survey.Question, responses survey.ResponseSet) (survey.LogicRule, bool) {
	for _, rule := range q.EffectiveRules() {
		if n.eval.EvaluateRule(rule, responses) {
			return rule, true
		}
	}
	return survey.LogicRule{}, false
}

func (n *Navigator) scanFrom(start int, skipped, shown map[string]bool, firedID string) Decision {
	for i := start; i < len(n.questions); i++ {
		q := n.questions[i]
		if skipped[q.ID] {
			continue
		}
		if q.Hidden && !shown[q.ID] {
			continue
		}
		return Decision{NextID: q.ID, FiredRuleID: firedID}
	}
	return Decision{Ended: true, FiredRuleID: firedID}
}
