// Package surveyfile reads survey definitions and response snapshots from
// YAML or JSON files. It is developer tooling for the engine: files are
// input snapshots for scoring and traversal replay, results are never
// written back.
package surveyfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"formpulse/internal/survey"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoQuestions       = errors.New("survey definition has no questions")
)

// Definition is a full survey snapshot: ordered questions plus scoring
// configuration.
type Definition struct {
	Title       string             `json:"title,omitempty"`
	Questions   []survey.Question  `json:"questions"`
	ScoreConfig survey.ScoreConfig `json:"scoreConfig"`
}

// LoadDefinition reads a survey definition from a .json, .yaml, or .yml
// file. YAML documents are normalized through JSON so the raw answer and
// condition payloads end up in their canonical wire form.
func LoadDefinition(path string) (*Definition, error) {
	data, err := readCanonicalJSON(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse survey definition %s: %w", path, err)
	}
	if len(def.Questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, path)
	}
	return &def, nil
}

// LoadResponses reads one respondent's answers: a map of question id to
// answer value.
func LoadResponses(path string) (survey.ResponseSet, error) {
	data, err := readCanonicalJSON(path)
	if err != nil {
		return nil, err
	}
	var rs survey.ResponseSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse responses %s: %w", path, err)
	}
	return rs, nil
}

// Problems runs the definition-level sanity checks: known question types and
// unique ids. Rule-level checks live in the logic package.
func (d *Definition) Problems() []string {
	var out []string
	seen := make(map[string]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.ID == "" {
			out = append(out, fmt.Sprintf("question #%d has no id", i+1))
			continue
		}
		if seen[q.ID] {
			out = append(out, fmt.Sprintf("duplicate question id %s", q.ID))
		}
		seen[q.ID] = true
		if !q.Type.IsValid() {
			out = append(out, fmt.Sprintf("question %s has unknown type %q", q.ID, q.Type))
		}
	}
	if d.ScoreConfig.Enabled && len(d.ScoreConfig.Categories) == 0 {
		out = append(out, "scoring is enabled but no categories are configured")
	}
	for _, q := range d.Questions {
		if q.ScoringCategory == "" {
			continue
		}
		if !hasCategory(d.ScoreConfig.Categories, q.ScoringCategory) {
			out = append(out, fmt.Sprintf("question %s references unknown category %s", q.ID, q.ScoringCategory))
		}
	}
	return out
}

func hasCategory(categories []survey.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func readCanonicalJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return data, nil
	case ".yaml", ".yml":
		return yamlToJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// yamlToJSON re-encodes a YAML document as JSON so downstream code only has
// to deal with one wire form.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	doc = normalizeYAML(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}
	return out, nil
}

// normalizeYAML rewrites map[any]any nodes (which yaml produces for
// non-string keys) into string-keyed maps that encoding/json accepts.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	default:
		return v
	}
}
