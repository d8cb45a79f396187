package scoring

import (
	"math"

	"formpulse/internal/survey"
)

// CategoryScore is one category's slice of the totals.
type CategoryScore struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage int     `json:"percentage"`
	Label      string  `json:"label,omitempty"`
}

// ScoreResult is the full report for one response set. It is derived state:
// recomputed from {questions, responses, scoreConfig} on every pass and never
// stored as the source of truth.
type ScoreResult struct {
	TotalScore float64                  `json:"totalScore"`
	MaxScore   float64                  `json:"maxScore"`
	Percentage int                      `json:"percentage"`
	Label      string                   `json:"label,omitempty"`
	ByCategory map[string]CategoryScore `json:"byCategory"`
}

// ScoreSurvey aggregates per-question scores into category and overall
// totals. Pure and deterministic: identical inputs yield identical results,
// empty inputs yield zeros, zero max never divides.
func ScoreSurvey(questions []survey.Question, responses survey.ResponseSet, cfg survey.ScoreConfig) ScoreResult {
	result := ScoreResult{ByCategory: map[string]CategoryScore{}}
	perCategory := map[string]*CategoryScore{}

	for _, q := range questions {
		if !q.IsScorable() {
			continue
		}
		qs := ScoreQuestion(q, responses[q.ID])
		result.TotalScore += qs.Score
		result.MaxScore += qs.MaxScore

		// Uncategorized questions count in the overall totals only.
		if q.ScoringCategory == "" {
			continue
		}
		cs, ok := perCategory[q.ScoringCategory]
		if !ok {
			cs = &CategoryScore{}
			perCategory[q.ScoringCategory] = cs
		}
		cs.Score += qs.Score
		cs.MaxScore += qs.MaxScore
	}

	result.Percentage = percentage(result.TotalScore, result.MaxScore)
	if label, ok := ResolveBand(resultRanges(cfg), float64(result.Percentage)); ok {
		result.Label = label
	}

	for id, cs := range perCategory {
		cs.Percentage = percentage(cs.Score, cs.MaxScore)
		if label, ok := ResolveBand(cfg.ScoreRanges, float64(cs.Percentage)); ok {
			cs.Label = label
		}
		result.ByCategory[id] = *cs
	}
	return result
}

// ResolveBand finds the first range in declared order whose inclusive bounds
// contain v. When nothing matches the label is omitted, not defaulted.
func ResolveBand(ranges []survey.ScoreRange, v float64) (string, bool) {
	for _, r := range ranges {
		if v >= r.Min && v <= r.Max {
			return r.Label, true
		}
	}
	return "", false
}

// resultRanges prefers the results-screen bands for the overall label when
// they differ from the categorization bands.
func resultRanges(cfg survey.ScoreConfig) []survey.ScoreRange {
	if cfg.ResultsScreen != nil && len(cfg.ResultsScreen.ScoreRanges) > 0 {
		return cfg.ResultsScreen.ScoreRanges
	}
	return cfg.ScoreRanges
}

// percentage clamps to 0..100: raw scores may go negative (distractor
// penalties) or exceed max (unvalidated input), the percentage never does.
func percentage(score, max float64) int {
	if max <= 0 {
		return 0
	}
	p := int(math.Round(score / max * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
