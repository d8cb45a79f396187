package scoring

import (
	"math"

	"formpulse/internal/answer"
	"formpulse/internal/survey"
)

// NPSStats summarizes one NPS question across many respondents.
type NPSStats struct {
	Promoters  int `json:"promoters"`
	Passives   int `json:"passives"`
	Detractors int `json:"detractors"`
	Responses  int `json:"responses"`
	// Score is the classic promoters% - detractors% delta, -100..100.
	Score int `json:"score"`
}

// NPSReport tallies a single NPS question over a set of response snapshots.
// Unanswered and malformed entries are left out of the tally.
func NPSReport(q survey.Question, responseSets []survey.ResponseSet) NPSStats {
	var stats NPSStats
	for _, rs := range responseSets {
		v, st := answer.Number(rs[q.ID])
		if st != answer.StatusAnswered {
			continue
		}
		stats.Responses++
		switch NPSBandFor(v) {
		case NPSPromoter:
			stats.Promoters++
		case NPSPassive:
			stats.Passives++
		default:
			stats.Detractors++
		}
	}
	if stats.Responses > 0 {
		promoterPct := float64(stats.Promoters) / float64(stats.Responses) * 100
		detractorPct := float64(stats.Detractors) / float64(stats.Responses) * 100
		stats.Score = int(math.Round(promoterPct - detractorPct))
	}
	return stats
}
