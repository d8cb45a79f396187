package answer

import (
	"math"

	"formpulse/internal/survey"
)

// Result reports the outcome of validating one answer. Validation failure is
// a value, never a panic or error return; callers decide whether to block
// submission or accept with a warning.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func ok() Result { return Result{OK: true} }

func okWith(r string) Result { return Result{OK: true, Reason: r} }

func invalid(r string) Result { return Result{OK: false, Reason: r} }

// Validate checks a raw answer against the question's static shape and the
// dynamic bounds derived from its configuration. A null answer validates as
// "unanswered" regardless of type; required-ness is a submission policy the
// caller enforces, not a shape concern.
func Validate(q survey.Question, raw []byte) Result {
	if IsNull(raw) {
		return okWith("unanswered")
	}

	switch survey.AnswerShapeFor(q.Type) {
	case survey.ShapeNone:
		return invalid("display_only")
	case survey.ShapeText:
		if _, st := Text(raw); st == StatusMalformed {
			return invalid("malformed_payload")
		}
		return ok()
	case survey.ShapeBool:
		if _, st := Bool(raw); st == StatusMalformed {
			return invalid("malformed_payload")
		}
		return ok()
	case survey.ShapeNumber:
		return validateNumber(q, raw)
	case survey.ShapeTextList:
		if q.Type == survey.TypeRanking {
			return validateRanking(q, raw)
		}
		return validateCheckbox(q, raw)
	case survey.ShapeTextOrList:
		return validateChoiceList(q, raw)
	case survey.ShapeRowMap:
		return validateMatrix(q, raw)
	case survey.ShapeRowListMap:
		return validateMatrixMulti(q, raw)
	case survey.ShapeAllocation:
		return validateConstantSum(q, raw)
	}
	return invalid("unknown_type")
}

func validateNumber(q survey.Question, raw []byte) Result {
	v, st := Number(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}

	switch q.Type {
	case survey.TypeRating, survey.TypeStarRating, survey.TypeLikert,
		survey.TypeOpinionScale, survey.TypeEmojiScale:
		if v != math.Trunc(v) {
			return invalid("not_an_integer")
		}
		if v < 1 || v > float64(q.ScaleMax()) {
			return invalid("out_of_scale")
		}
	case survey.TypeNPS:
		if v != math.Trunc(v) {
			return invalid("not_an_integer")
		}
		if v < 0 || v > 10 {
			return invalid("out_of_scale")
		}
	case survey.TypeSlider:
		return validateSlider(q, v)
	}
	return ok()
}

func validateSlider(q survey.Question, v float64) Result {
	min, max := 0.0, 100.0
	if q.Min != nil {
		min = *q.Min
	}
	if q.Max != nil {
		max = *q.Max
	}
	if v < min || v > max {
		return invalid("out_of_range")
	}
	if q.Step > 0 {
		steps := (v - min) / q.Step
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return invalid("off_step")
		}
	}
	return ok()
}

func validateCheckbox(q survey.Question, raw []byte) Result {
	list, st := TextList(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	if dup := firstDuplicate(list); dup != "" {
		return invalid("duplicate_selection")
	}
	if len(q.Options) > 0 {
		for _, v := range list {
			if !containsString(q.Options, v) {
				return invalid("unknown_option")
			}
		}
	}
	if q.MinSelections > 0 && len(list) < q.MinSelections {
		return invalid("too_few_selections")
	}
	if q.MaxSelections > 0 && len(list) > q.MaxSelections {
		return invalid("too_many_selections")
	}
	return ok()
}

func validateChoiceList(q survey.Question, raw []byte) Result {
	list, st := TextOrList(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	if len(q.Options) > 0 {
		for _, v := range list {
			if !containsString(q.Options, v) {
				return invalid("unknown_option")
			}
		}
	}
	return ok()
}

// validateRanking accepts a duplicate-free subset of the configured options.
// Partial rankings are legal; the scorer rewards only the ranked prefix.
func validateRanking(q survey.Question, raw []byte) Result {
	list, st := TextList(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	if dup := firstDuplicate(list); dup != "" {
		return invalid("duplicate_rank")
	}
	if len(q.Options) > 0 {
		if len(list) > len(q.Options) {
			return invalid("too_many_ranked")
		}
		for _, v := range list {
			if !containsString(q.Options, v) {
				return invalid("unknown_option")
			}
		}
	}
	return ok()
}

func validateMatrix(q survey.Question, raw []byte) Result {
	m, st := RowMap(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	for row, col := range m {
		if len(q.Rows) > 0 && !containsString(q.Rows, row) {
			return invalid("unknown_row")
		}
		if len(q.Columns) > 0 && !containsString(q.Columns, col) {
			return invalid("unknown_column")
		}
	}
	return ok()
}

func validateMatrixMulti(q survey.Question, raw []byte) Result {
	m, st := RowListMap(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	for row, cols := range m {
		if len(q.Rows) > 0 && !containsString(q.Rows, row) {
			return invalid("unknown_row")
		}
		for _, col := range cols {
			if len(q.Columns) > 0 && !containsString(q.Columns, col) {
				return invalid("unknown_column")
			}
		}
	}
	return ok()
}

// validateConstantSum requires the allocation to land exactly on the
// configured total. No tolerance: partial or overshooting allocations are
// authoring bugs the respondent UI should have prevented.
func validateConstantSum(q survey.Question, raw []byte) Result {
	m, st := Allocation(raw)
	if st == StatusMalformed {
		return invalid("malformed_payload")
	}
	if st == StatusUnanswered {
		return okWith("unanswered")
	}
	total := 0.0
	for opt, pts := range m {
		if len(q.Options) > 0 && !containsString(q.Options, opt) {
			return invalid("unknown_option")
		}
		if pts < 0 {
			return invalid("negative_allocation")
		}
		total += pts
	}
	if q.TotalPoints > 0 && total != q.TotalPoints {
		return invalid("total_mismatch")
	}
	return ok()
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func firstDuplicate(list []string) string {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			return v
		}
		seen[v] = struct{}{}
	}
	return ""
}
