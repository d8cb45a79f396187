package survey

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QuestionType discriminates the answer shape, the operators a logic
// condition may use against the question, and the scoring strategy.
type QuestionType string

const (
	TypeShortText      QuestionType = "short_text"
	TypeLongText       QuestionType = "long_text"
	TypeEmail          QuestionType = "email"
	TypePhoneNumber    QuestionType = "phone_number"
	TypeWebsite        QuestionType = "website"
	TypeAddress        QuestionType = "address"
	TypeDate           QuestionType = "date"
	TypeTime           QuestionType = "time"
	TypeSignature      QuestionType = "signature"
	TypeFileUpload     QuestionType = "file_upload"
	TypeStatement      QuestionType = "statement"
	TypeWelcomeScreen  QuestionType = "welcome_screen"
	TypeThankYouScreen QuestionType = "thank_you_screen"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeDropdown       QuestionType = "dropdown"
	TypeImageChoice    QuestionType = "image_choice"
	TypeYesNo          QuestionType = "yes_no"
	TypeLegal          QuestionType = "legal"
	TypeCheckbox       QuestionType = "checkbox"
	TypeRating         QuestionType = "rating"
	TypeStarRating     QuestionType = "star_rating"
	TypeLikert         QuestionType = "likert"
	TypeOpinionScale   QuestionType = "opinion_scale"
	TypeEmojiScale     QuestionType = "emoji_scale"
	TypeSlider         QuestionType = "slider"
	TypeNumber         QuestionType = "number"
	TypeNPS            QuestionType = "nps"
	TypeMatrix         QuestionType = "matrix"
	TypeMatrixCheckbox QuestionType = "matrix_checkbox"
	TypeRanking        QuestionType = "ranking"
	TypeConstantSum    QuestionType = "constant_sum"
)

// Question is one authored survey question. Free-form per-type configuration
// lives in the optional fields; a scored question is immutable once responses
// exist, so nothing here mutates after authoring.
type Question struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Title    string       `json:"title,omitempty"`
	Required bool         `json:"required,omitempty"`

	// Hidden questions are only reachable through a "show" logic rule.
	Hidden bool `json:"hidden,omitempty"`

	Options       []string `json:"options,omitempty"`
	Rows          []string `json:"rows,omitempty"`
	Columns       []string `json:"columns,omitempty"`
	RatingScale   int      `json:"ratingScale,omitempty"`
	Points        int      `json:"points,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Step          float64  `json:"step,omitempty"`
	MinSelections int      `json:"minSelections,omitempty"`
	MaxSelections int      `json:"maxSelections,omitempty"`
	TotalPoints   float64  `json:"totalPoints,omitempty"`

	Scorable        *bool                         `json:"scorable,omitempty"`
	ScoreWeight     float64                       `json:"scoreWeight,omitempty"`
	ScoringCategory string                        `json:"scoringCategory,omitempty"`
	OptionScores    map[string]float64            `json:"optionScores,omitempty"`
	RowScores       map[string]map[string]float64 `json:"rowScores,omitempty"`

	LogicRules []LogicRule `json:"logicRules,omitempty"`
	LegacySkip *LegacySkip `json:"skipLogic,omitempty"`
}

// Weight returns the scoring weight, defaulting to 1 when unset.
func (q Question) Weight() float64 {
	if q.ScoreWeight > 0 {
		return q.ScoreWeight
	}
	return 1
}

// ScaleMax resolves the upper bound for the rating family:
// ratingScale, then points, then 5.
func (q Question) ScaleMax() int {
	if q.RatingScale > 0 {
		return q.RatingScale
	}
	if q.Points > 0 {
		return q.Points
	}
	return 5
}

// IsScorable reports whether the question participates in aggregation.
// Questions with scoring mode "none" or an explicit scorable=false are
// excluded entirely, never scored as zero.
func (q Question) IsScorable() bool {
	if q.Scorable != nil && !*q.Scorable {
		return false
	}
	return ScoringModeFor(q.Type) != ModeNone
}

// Operator is the comparison vocabulary for logic conditions.
type Operator string

const (
	OpAnswered    Operator = "answered"
	OpNotAnswered Operator = "not_answered"
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpGT          Operator = "gt"
	OpLT          Operator = "lt"
	OpGTE         Operator = "gte"
	OpLTE         Operator = "lte"
	OpBetween     Operator = "between"
	OpContains    Operator = "contains"
	OpIncludesAny Operator = "includes_any"
	OpIncludesAll Operator = "includes_all"
	OpIsTrue      Operator = "is_true"
	OpIsFalse     Operator = "is_false"
)

// LogicCondition compares one question's answer against a value. The value
// payload stays raw JSON; its expected shape depends on the operator (absent
// for the unary operators, scalar for comparisons, {min,max} for between,
// a string array for the membership operators).
type LogicCondition struct {
	QuestionID string          `json:"questionId"`
	Operator   Operator        `json:"operator"`
	Value      json.RawMessage `json:"value,omitempty"`
}

// RuleAction is what a matching rule does to traversal.
type RuleAction string

const (
	ActionSkip RuleAction = "skip"
	ActionShow RuleAction = "show"
	ActionEnd  RuleAction = "end"
	ActionJump RuleAction = "jump"
)

// Condition combination for a rule.
const (
	LogicAnd = "and"
	LogicOr  = "or"
)

// LogicRule joins one or more conditions with and/or and carries the action
// fired when the combination holds. TargetQuestionID is required for
// skip/show/jump and absent for end.
type LogicRule struct {
	ID               string           `json:"id"`
	Conditions       []LogicCondition `json:"conditions"`
	ConditionLogic   string           `json:"conditionLogic"`
	Action           RuleAction       `json:"action"`
	TargetQuestionID string           `json:"targetQuestionId,omitempty"`
}

// NewLogicRule builds a rule with a generated id.
func NewLogicRule(action RuleAction, target string, logic string, conds ...LogicCondition) LogicRule {
	if logic == "" {
		logic = LogicAnd
	}
	return LogicRule{
		ID:               uuid.NewString(),
		Conditions:       conds,
		ConditionLogic:   logic,
		Action:           action,
		TargetQuestionID: target,
	}
}

// Category names a scoring group referenced by Question.ScoringCategory.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScoreRange is a labeled inclusive band, e.g. 0-40 "Low".
type ScoreRange struct {
	ID    string  `json:"id"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// ResultsScreen optionally overrides the bands used for the respondent-facing
// results view.
type ResultsScreen struct {
	ScoreRanges []ScoreRange `json:"scoreRanges,omitempty"`
}

// ScoreConfig is the survey-level scoring configuration. An enabled config
// with an empty category list is a misconfiguration surfaced by the reporting
// status, never silently tolerated.
type ScoreConfig struct {
	Enabled       bool           `json:"enabled"`
	Categories    []Category     `json:"categories"`
	ScoreRanges   []ScoreRange   `json:"scoreRanges"`
	ResultsScreen *ResultsScreen `json:"resultsScreen,omitempty"`
}

// ResponseSet maps question id to the raw JSON answer payload. A missing key
// or JSON null both mean "unanswered"; an answered-with-default never exists.
type ResponseSet map[string]json.RawMessage
