package survey

import (
	"errors"
	"fmt"
	"sort"
)

// AnswerShape is the canonical wire shape for a question's answer. Every
// question type maps to exactly one shape.
type AnswerShape string

const (
	ShapeNone       AnswerShape = "none"         // display-only, answer is always null
	ShapeText       AnswerShape = "text"         // string
	ShapeNumber     AnswerShape = "number"       // number
	ShapeBool       AnswerShape = "bool"         // boolean
	ShapeTextList   AnswerShape = "text_list"    // array of strings
	ShapeTextOrList AnswerShape = "text_or_list" // string or array of strings
	ShapeRowMap     AnswerShape = "row_map"      // row label -> column label
	ShapeRowListMap AnswerShape = "row_list_map" // row label -> column labels
	ShapeAllocation AnswerShape = "allocation"   // option label -> points
)

// ScoringMode selects the strategy that converts an answer into a score.
type ScoringMode string

const (
	ModeNone             ScoringMode = "none"
	ModeNumericDirect    ScoringMode = "numeric_direct"
	ModePositionMapped   ScoringMode = "position_mapped"
	ModeCustom           ScoringMode = "custom"
	ModeCount            ScoringMode = "count"
	ModeNPS              ScoringMode = "nps"
	ModeMatrixSum        ScoringMode = "matrix_sum"
	ModeRankingWeighted  ScoringMode = "ranking_weighted"
	ModeConstantSumTotal ScoringMode = "constant_sum_total"
)

// allTypes is the canonical enumeration. The three registry tables below must
// cover exactly this set; VerifyRegistry enforces that.
var allTypes = []QuestionType{
	TypeShortText, TypeLongText, TypeEmail, TypePhoneNumber, TypeWebsite,
	TypeAddress, TypeDate, TypeTime, TypeSignature, TypeFileUpload,
	TypeStatement, TypeWelcomeScreen, TypeThankYouScreen,
	TypeMultipleChoice, TypeDropdown, TypeImageChoice, TypeYesNo, TypeLegal,
	TypeCheckbox,
	TypeRating, TypeStarRating, TypeLikert, TypeOpinionScale, TypeEmojiScale,
	TypeSlider, TypeNumber, TypeNPS,
	TypeMatrix, TypeMatrixCheckbox, TypeRanking, TypeConstantSum,
}

// AllTypes returns the canonical question type enumeration.
func AllTypes() []QuestionType {
	out := make([]QuestionType, len(allTypes))
	copy(out, allTypes)
	return out
}

// IsValid reports membership in the closed type set.
func (t QuestionType) IsValid() bool {
	_, ok := answerShapes[t]
	return ok
}

var answerShapes = map[QuestionType]AnswerShape{
	TypeShortText:      ShapeText,
	TypeLongText:       ShapeText,
	TypeEmail:          ShapeText,
	TypePhoneNumber:    ShapeText,
	TypeWebsite:        ShapeText,
	TypeAddress:        ShapeText,
	TypeDate:           ShapeText,
	TypeTime:           ShapeText,
	TypeSignature:      ShapeText,
	TypeFileUpload:     ShapeText,
	TypeStatement:      ShapeNone,
	TypeWelcomeScreen:  ShapeNone,
	TypeThankYouScreen: ShapeNone,
	TypeMultipleChoice: ShapeText,
	TypeDropdown:       ShapeText,
	TypeImageChoice:    ShapeTextOrList,
	TypeYesNo:          ShapeBool,
	TypeLegal:          ShapeBool,
	TypeCheckbox:       ShapeTextList,
	TypeRating:         ShapeNumber,
	TypeStarRating:     ShapeNumber,
	TypeLikert:         ShapeNumber,
	TypeOpinionScale:   ShapeNumber,
	TypeEmojiScale:     ShapeNumber,
	TypeSlider:         ShapeNumber,
	TypeNumber:         ShapeNumber,
	TypeNPS:            ShapeNumber,
	TypeMatrix:         ShapeRowMap,
	TypeMatrixCheckbox: ShapeRowListMap,
	TypeRanking:        ShapeTextList,
	TypeConstantSum:    ShapeAllocation,
}

var (
	textOps = []Operator{OpAnswered, OpNotAnswered, OpEquals, OpNotEquals, OpContains}
	numOps  = []Operator{OpAnswered, OpNotAnswered, OpEquals, OpNotEquals, OpGT, OpLT, OpGTE, OpLTE, OpBetween}
	boolOps = []Operator{OpAnswered, OpNotAnswered, OpIsTrue, OpIsFalse, OpEquals}
	pickOps = []Operator{OpAnswered, OpNotAnswered, OpEquals, OpNotEquals, OpIncludesAny}
	listOps = []Operator{OpAnswered, OpNotAnswered, OpContains, OpIncludesAny, OpIncludesAll}
	bareOps = []Operator{OpAnswered, OpNotAnswered}
)

var validOperators = map[QuestionType][]Operator{
	TypeShortText:      textOps,
	TypeLongText:       textOps,
	TypeEmail:          textOps,
	TypePhoneNumber:    textOps,
	TypeWebsite:        textOps,
	TypeAddress:        textOps,
	TypeDate:           textOps,
	TypeTime:           textOps,
	TypeSignature:      bareOps,
	TypeFileUpload:     bareOps,
	TypeStatement:      nil,
	TypeWelcomeScreen:  nil,
	TypeThankYouScreen: nil,
	TypeMultipleChoice: pickOps,
	TypeDropdown:       pickOps,
	TypeImageChoice:    listOps,
	TypeYesNo:          boolOps,
	TypeLegal:          boolOps,
	TypeCheckbox:       listOps,
	TypeRating:         numOps,
	TypeStarRating:     numOps,
	TypeLikert:         numOps,
	TypeOpinionScale:   numOps,
	TypeEmojiScale:     numOps,
	TypeSlider:         numOps,
	TypeNumber:         numOps,
	TypeNPS:            numOps,
	TypeMatrix:         bareOps,
	TypeMatrixCheckbox: bareOps,
	TypeRanking:        bareOps,
	TypeConstantSum:    bareOps,
}

var scoringModes = map[QuestionType]ScoringMode{
	TypeShortText:      ModeNone,
	TypeLongText:       ModeNone,
	TypeEmail:          ModeNone,
	TypePhoneNumber:    ModeNone,
	TypeWebsite:        ModeNone,
	TypeAddress:        ModeNone,
	TypeDate:           ModeNone,
	TypeTime:           ModeNone,
	TypeSignature:      ModeNone,
	TypeFileUpload:     ModeNone,
	TypeStatement:      ModeNone,
	TypeWelcomeScreen:  ModeNone,
	TypeThankYouScreen: ModeNone,
	TypeMultipleChoice: ModePositionMapped,
	TypeDropdown:       ModePositionMapped,
	TypeImageChoice:    ModePositionMapped,
	TypeYesNo:          ModeCustom,
	TypeLegal:          ModeCustom,
	TypeCheckbox:       ModeCount,
	TypeRating:         ModeNumericDirect,
	TypeStarRating:     ModeNumericDirect,
	TypeLikert:         ModeNumericDirect,
	TypeOpinionScale:   ModeNumericDirect,
	TypeEmojiScale:     ModeNumericDirect,
	TypeSlider:         ModeNumericDirect,
	TypeNumber:         ModeNumericDirect,
	TypeNPS:            ModeNPS,
	TypeMatrix:         ModeMatrixSum,
	TypeMatrixCheckbox: ModeMatrixSum,
	TypeRanking:        ModeRankingWeighted,
	TypeConstantSum:    ModeConstantSumTotal,
}

// AnswerShapeFor returns the canonical answer shape for a type. Unknown types
// resolve to ShapeNone; callers that care should check IsValid first.
func AnswerShapeFor(t QuestionType) AnswerShape {
	if s, ok := answerShapes[t]; ok {
		return s
	}
	return ShapeNone
}

// ValidOperators returns the operator allow-list for a type.
func ValidOperators(t QuestionType) []Operator {
	ops := validOperators[t]
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// OperatorAllowed reports whether op may target a question of type t.
func OperatorAllowed(t QuestionType, op Operator) bool {
	for _, o := range validOperators[t] {
		if o == op {
			return true
		}
	}
	return false
}

// ScoringModeFor returns the scoring strategy bound to a type.
func ScoringModeFor(t QuestionType) ScoringMode {
	if m, ok := scoringModes[t]; ok {
		return m
	}
	return ModeNone
}

// ErrRegistryOutOfSync is returned by VerifyRegistry when the three parallel
// tables do not cover the canonical type set exactly.
var ErrRegistryOutOfSync = errors.New("question type registry out of sync")

// VerifyRegistry checks that answer shapes, operator lists, and scoring modes
// are each keyed by exactly the canonical type enumeration. A mismatch is a
// fatal configuration error, run this at startup or in tests, not per request.
func VerifyRegistry() error {
	canonical := make(map[QuestionType]struct{}, len(allTypes))
	for _, t := range allTypes {
		if _, dup := canonical[t]; dup {
			return fmt.Errorf("%w: duplicate canonical type %q", ErrRegistryOutOfSync, t)
		}
		canonical[t] = struct{}{}
	}

	tables := []struct {
		name string
		keys []QuestionType
	}{
		{"answer shapes", mapKeys(answerShapes)},
		{"operators", mapKeysOps(validOperators)},
		{"scoring modes", mapKeysModes(scoringModes)},
	}
	for _, tab := range tables {
		if len(tab.keys) != len(canonical) {
			return fmt.Errorf("%w: %s table has %d entries, want %d",
				ErrRegistryOutOfSync, tab.name, len(tab.keys), len(canonical))
		}
		for _, k := range tab.keys {
			if _, ok := canonical[k]; !ok {
				return fmt.Errorf("%w: %s table has unknown type %q", ErrRegistryOutOfSync, tab.name, k)
			}
		}
	}
	return nil
}

func mapKeys(m map[QuestionType]AnswerShape) []QuestionType {
	out := make([]QuestionType, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortTypes(out)
	return out
}

func mapKeysOps(m map[QuestionType][]Operator) []QuestionType {
	out := make([]QuestionType, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortTypes(out)
	return out
}

func mapKeysModes(m map[QuestionType]ScoringMode) []QuestionType {
	out := make([]QuestionType, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortTypes(out)
	return out
}

func sortTypes(ts []QuestionType) {
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
}
