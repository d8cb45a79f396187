package scoring

import "formpulse/internal/survey"

// ReportStatus tells reporting surfaces how to present scoring output.
// Misconfigured, disabled, and no-responses are distinct states and must
// never be conflated in dashboards.
type ReportStatus string

const (
	StatusHealthy       ReportStatus = "healthy"
	StatusNoScoring     ReportStatus = "no_scoring"
	StatusMisconfigured ReportStatus = "misconfigured"
	StatusSingleVersion ReportStatus = "single_version"
	StatusNoResponses   ReportStatus = "no_responses"
)

// DeriveStatus computes the reporting status for a survey's score dashboard.
// versionCount is the number of published survey versions; with only one
// there is no trend line to draw, which reporting renders differently from a
// fully healthy state.
func DeriveStatus(cfg survey.ScoreConfig, responseCount, versionCount int) ReportStatus {
	if !cfg.Enabled {
		return StatusNoScoring
	}
	if len(cfg.Categories) == 0 || len(cfg.ScoreRanges) == 0 {
		return StatusMisconfigured
	}
	if responseCount == 0 {
		return StatusNoResponses
	}
	if versionCount <= 1 {
		return StatusSingleVersion
	}
	return StatusHealthy
}
