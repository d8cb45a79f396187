package scoring

import (
	"encoding/json"
	"sort"

	"formpulse/internal/answer"
	"formpulse/internal/survey"
)

// QuestionScore is the (raw, max) pair for one question. An unanswered
// question scores 0 but keeps its configured max so partial submissions do
// not inflate the percentage.
type QuestionScore struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Answered bool    `json:"answered"`
	NPSBand  string  `json:"npsBand,omitempty"`
}

// NPS band labels.
const (
	NPSDetractor = "detractor"
	NPSPassive   = "passive"
	NPSPromoter  = "promoter"
)

// NPSBandFor classifies a 0-10 rating.
func NPSBandFor(v float64) string {
	switch {
	case v <= 6:
		return NPSDetractor
	case v <= 8:
		return NPSPassive
	default:
		return NPSPromoter
	}
}

// ScoreQuestion computes the score pair for a single question. Dispatch is
// purely a function of the question type's scoring mode; malformed payloads
// score like unanswered ones rather than failing the whole pass.
func ScoreQuestion(q survey.Question, raw json.RawMessage) QuestionScore {
	switch survey.ScoringModeFor(q.Type) {
	case survey.ModeNumericDirect:
		return scoreNumericDirect(q, raw)
	case survey.ModePositionMapped, survey.ModeCustom:
		return scoreOptionMapped(q, raw)
	case survey.ModeCount:
		return scoreCount(q, raw)
	case survey.ModeNPS:
		return scoreNPS(q, raw)
	case survey.ModeMatrixSum:
		return scoreMatrixSum(q, raw)
	case survey.ModeRankingWeighted:
		return scoreRankingWeighted(q, raw)
	case survey.ModeConstantSumTotal:
		return scoreConstantSumTotal(q, raw)
	default:
		return QuestionScore{}
	}
}

func scoreNumericDirect(q survey.Question, raw json.RawMessage) QuestionScore {
	weight := q.Weight()
	upper := numericUpperBound(q)
	max := upper * weight

	v, st := answer.Number(raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}
	if upper <= 0 {
		// A number question with no configured bound has no meaningful max;
		// it contributes nothing to the totals rather than raw points
		// against a zero max.
		return QuestionScore{Answered: true}
	}
	return QuestionScore{Score: v * weight, MaxScore: max, Answered: true}
}

// numericUpperBound resolves the top of the numeric range: the rating-family
// scale for rating types, the configured max for sliders and numbers. An
// unconfigured slider defaults to 100, matching validation; an unconfigured
// number question is unbounded and resolves to 0.
func numericUpperBound(q survey.Question) float64 {
	switch q.Type {
	case survey.TypeSlider:
		if q.Max != nil {
			return *q.Max
		}
		if q.Points > 0 {
			return float64(q.Points)
		}
		return 100
	case survey.TypeNumber:
		if q.Max != nil {
			return *q.Max
		}
		if q.Points > 0 {
			return float64(q.Points)
		}
		return 0
	default:
		return float64(q.ScaleMax())
	}
}

func scoreOptionMapped(q survey.Question, raw json.RawMessage) QuestionScore {
	// Multi-select types can legitimately collect every positive option, so
	// their max is the positive sum; single-select max is the best option.
	max := maxPositiveOptionScore(q.OptionScores)
	if survey.AnswerShapeFor(q.Type) == survey.ShapeTextOrList {
		max = sumPositiveOptionScores(q.OptionScores)
	}

	selected, st := selectedLabels(q, raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}

	// Unconfigured options score 0, never an error.
	score := 0.0
	for _, label := range selected {
		score += q.OptionScores[label]
	}
	return QuestionScore{Score: score, MaxScore: max, Answered: true}
}

// selectedLabels normalizes the answer for option-mapped types to a label
// list. Boolean answers map onto the Yes/No option labels so yes_no and
// legal questions can share the optionScores mechanism.
func selectedLabels(q survey.Question, raw json.RawMessage) ([]string, answer.Status) {
	if survey.AnswerShapeFor(q.Type) == survey.ShapeBool {
		b, st := answer.Bool(raw)
		if st != answer.StatusAnswered {
			return nil, st
		}
		if b {
			return []string{"Yes"}, st
		}
		return []string{"No"}, st
	}
	return answer.TextOrList(raw)
}

func scoreCount(q survey.Question, raw json.RawMessage) QuestionScore {
	// Only positive configured scores count toward max: negative-scored
	// distractor options must never inflate it.
	max := sumPositiveOptionScores(q.OptionScores)

	list, st := answer.TextList(raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}
	score := 0.0
	for _, v := range list {
		score += q.OptionScores[v]
	}
	return QuestionScore{Score: score, MaxScore: max, Answered: true}
}

func scoreNPS(q survey.Question, raw json.RawMessage) QuestionScore {
	v, st := answer.Number(raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: 10}
	}
	return QuestionScore{Score: v, MaxScore: 10, Answered: true, NPSBand: NPSBandFor(v)}
}

func scoreMatrixSum(q survey.Question, raw json.RawMessage) QuestionScore {
	max := matrixMaxScore(q)

	rows, st := matrixSelections(q, raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}

	score := 0.0
	for row, cols := range rows {
		rowScores, configured := q.RowScores[row]
		if !configured {
			// One point per answered row when no row-level scores exist.
			score++
			continue
		}
		for _, col := range cols {
			score += rowScores[col]
		}
	}
	return QuestionScore{Score: score, MaxScore: max, Answered: true}
}

func matrixSelections(q survey.Question, raw json.RawMessage) (map[string][]string, answer.Status) {
	if q.Type == survey.TypeMatrixCheckbox {
		return answer.RowListMap(raw)
	}
	m, st := answer.RowMap(raw)
	if st != answer.StatusAnswered {
		return nil, st
	}
	out := make(map[string][]string, len(m))
	for row, col := range m {
		out[row] = []string{col}
	}
	return out, st
}

// matrixMaxScore sums each row's best outcome: for single-select rows the
// highest positive column score, for multi-select rows every positive column
// score, and one point for rows without configured scores.
func matrixMaxScore(q survey.Question) float64 {
	max := 0.0
	for _, row := range q.Rows {
		rowScores, ok := q.RowScores[row]
		if !ok {
			max++
			continue
		}
		if q.Type == survey.TypeMatrixCheckbox {
			max += sumPositiveOptionScores(rowScores)
		} else {
			max += maxPositiveOptionScore(rowScores)
		}
	}
	return max
}

// scoreRankingWeighted rewards each ranked item by how high it was placed:
// rank r of n options earns (n - r) * weight. Partial rankings earn the top
// positions only; the max is the full descending sum over all options.
func scoreRankingWeighted(q survey.Question, raw json.RawMessage) QuestionScore {
	weight := q.Weight()
	n := len(q.Options)
	max := weight * float64(n*(n-1)) / 2

	list, st := answer.TextList(raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}
	score := 0.0
	for i := range list {
		if i >= n {
			break
		}
		score += float64(n-i-1) * weight
	}
	return QuestionScore{Score: score, MaxScore: max, Answered: true}
}

// scoreConstantSumTotal scores by the allocation given to the "correct"
// option (the highest-scored entry in optionScores) when one is designated,
// otherwise by the total points allocated.
func scoreConstantSumTotal(q survey.Question, raw json.RawMessage) QuestionScore {
	max := q.TotalPoints

	alloc, st := answer.Allocation(raw)
	if st != answer.StatusAnswered {
		return QuestionScore{MaxScore: max}
	}

	if target, ok := designatedOption(q.OptionScores); ok {
		return QuestionScore{Score: alloc[target], MaxScore: max, Answered: true}
	}
	total := 0.0
	for _, pts := range alloc {
		total += pts
	}
	return QuestionScore{Score: total, MaxScore: max, Answered: true}
}

// designatedOption picks the highest positively scored option, breaking ties
// by label so the choice is deterministic.
func designatedOption(scores map[string]float64) (string, bool) {
	labels := make([]string, 0, len(scores))
	for label, s := range scores {
		if s > 0 {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return "", false
	}
	sort.Strings(labels)
	best := labels[0]
	for _, label := range labels[1:] {
		if scores[label] > scores[best] {
			best = label
		}
	}
	return best, true
}

func maxPositiveOptionScore(scores map[string]float64) float64 {
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	return max
}

func sumPositiveOptionScores(scores map[string]float64) float64 {
	sum := 0.0
	for _, s := range scores {
		if s > 0 {
			sum += s
		}
	}
	return sum
}
