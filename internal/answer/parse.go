package answer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Status is the outcome of decoding a raw answer payload.
type Status string

const (
	StatusAnswered   Status = "answered"
	StatusUnanswered Status = "unanswered"
	StatusMalformed  Status = "malformed"
)

// IsNull reports whether a raw payload means "unanswered": absent, empty,
// or JSON null. Null never means "answered with a default".
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Text decodes a string answer. Empty or whitespace-only strings count as
// unanswered.
func Text(raw json.RawMessage) (string, Status) {
	if IsNull(raw) {
		return "", StatusUnanswered
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", StatusMalformed
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", StatusUnanswered
	}
	return s, StatusAnswered
}

// Number decodes a numeric answer. Numeric strings such as "4" are accepted,
// matching how front ends serialize rating widgets.
func Number(raw json.RawMessage) (float64, Status) {
	if IsNull(raw) {
		return 0, StatusUnanswered
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, StatusAnswered
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, StatusMalformed
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, StatusUnanswered
	}
	var viaString float64
	if err := json.Unmarshal([]byte(s), &viaString); err != nil {
		return 0, StatusMalformed
	}
	return viaString, StatusAnswered
}

// Bool decodes a boolean answer.
func Bool(raw json.RawMessage) (bool, Status) {
	if IsNull(raw) {
		return false, StatusUnanswered
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, StatusMalformed
	}
	return b, StatusAnswered
}

// TextList decodes a string-array answer. An empty array counts as
// unanswered; blank entries are dropped.
func TextList(raw json.RawMessage) ([]string, Status) {
	if IsNull(raw) {
		return nil, StatusUnanswered
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, StatusMalformed
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, StatusUnanswered
	}
	return out, StatusAnswered
}

// TextOrList decodes an answer that may be a single string or a string array
// (image choice with multi-select off or on). The result is normalized to a
// list either way.
func TextOrList(raw json.RawMessage) ([]string, Status) {
	if IsNull(raw) {
		return nil, StatusUnanswered
	}
	if s, st := Text(raw); st != StatusMalformed {
		if st == StatusUnanswered {
			return nil, StatusUnanswered
		}
		return []string{s}, StatusAnswered
	}
	return TextList(raw)
}

// RowMap decodes a matrix answer: row label -> selected column label.
func RowMap(raw json.RawMessage) (map[string]string, Status) {
	if IsNull(raw) {
		return nil, StatusUnanswered
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, StatusMalformed
	}
	out := make(map[string]string, len(m))
	for row, col := range m {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		out[row] = col
	}
	if len(out) == 0 {
		return nil, StatusUnanswered
	}
	return out, StatusAnswered
}

// RowListMap decodes a multi-select matrix answer: row label -> column labels.
func RowListMap(raw json.RawMessage) (map[string][]string, Status) {
	if IsNull(raw) {
		return nil, StatusUnanswered
	}
	var m map[string][]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, StatusMalformed
	}
	out := make(map[string][]string, len(m))
	for row, cols := range m {
		clean := make([]string, 0, len(cols))
		for _, c := range cols {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			clean = append(clean, c)
		}
		if len(clean) == 0 {
			continue
		}
		out[row] = clean
	}
	if len(out) == 0 {
		return nil, StatusUnanswered
	}
	return out, StatusAnswered
}

// Allocation decodes a constant-sum answer: option label -> allocated points.
func Allocation(raw json.RawMessage) (map[string]float64, Status) {
	if IsNull(raw) {
		return nil, StatusUnanswered
	}
	var m map[string]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, StatusMalformed
	}
	if len(m) == 0 {
		return nil, StatusUnanswered
	}
	return m, StatusAnswered
}
