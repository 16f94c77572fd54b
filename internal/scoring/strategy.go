package scoring

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValueKind tells which field of a Value is populated.
type ValueKind int

const (
	KindBool ValueKind = iota + 1
	KindInt
	KindText
	KindOptions
)

// Value is a parsed answer.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Int     int
	Text    string
	Options []int
}

// Limits are the configurable bounds of the strategies.
type Limits struct {
	OpenAnswerMaxLength int
}

var DefaultLimits = Limits{OpenAnswerMaxLength: util.DefaultOpenAnswerMaxLength}

// family is the shared capability set of a group of question types.
type family struct {
	stringToValue func(s *Strategy, raw string) (Value, error)
	isValidValue  func(s *Strategy, v Value) string
	valueToString func(v Value) string
}

// Strategy parses and validates raw answers of one question type. Parameters are filled per type by StrategyFor.
type Strategy struct {
	Type      model.QuestionType
	AllowNull bool
	Min       int
	Max       int
	MaxLength int
	Multiple  bool

	fam *family
}

var (
	singleChoicePattern   = regexp.MustCompile(`^\s*\d+\s*$`)
	multipleChoicePattern = regexp.MustCompile(`^\s*\d+\s*(,\s*\d+\s*)*$`)
)

var booleanFamily = &family{
	stringToValue: func(_ *Strategy, raw string) (Value, error) {
		return Value{Kind: KindBool, Bool: strings.EqualFold(strings.TrimSpace(raw), "true")}, nil
	},
	isValidValue: func(*Strategy, Value) string { return "" },
	valueToString: func(v Value) string {
		return strconv.FormatBool(v.Bool)
	},
}

var intervalFamily = &family{
	stringToValue: func(_ *Strategy, raw string) (Value, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, util.UnparseableValue(raw, "expected an integer")
		}
		return Value{Kind: KindInt, Int: n}, nil
	},
	isValidValue: func(s *Strategy, v Value) string {
		if v.Int < s.Min || v.Int > s.Max {
			return "must be between " + strconv.Itoa(s.Min) + " and " + strconv.Itoa(s.Max)
		}
		return ""
	},
	valueToString: func(v Value) string {
		return strconv.Itoa(v.Int)
	},
}

var openTextFamily = &family{
	stringToValue: func(_ *Strategy, raw string) (Value, error) {
		return Value{Kind: KindText, Text: raw}, nil
	},
	isValidValue: func(s *Strategy, v Value) string {
		if strings.TrimSpace(v.Text) == "" {
			return "must not be empty"
		}
		if utf8.RuneCountInString(v.Text) > s.MaxLength {
			return "must be at most " + strconv.Itoa(s.MaxLength) + " characters"
		}
		return ""
	},
	valueToString: func(v Value) string { return v.Text },
}

var customizedFamily = &family{
	stringToValue: func(s *Strategy, raw string) (Value, error) {
		pattern := singleChoicePattern
		if s.Multiple {
			pattern = multipleChoicePattern
		}
		if !pattern.MatchString(raw) {
			if s.Multiple {
				return Value{}, util.UnparseableValue(raw, "expected comma separated option ids")
			}
			return Value{}, util.UnparseableValue(raw, "expected a single option id")
		}
		tokens := strings.Split(raw, ",")
		ids := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			id, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return Value{}, util.UnparseableValue(raw, "option id out of range")
			}
			ids = append(ids, id)
		}
		return Value{Kind: KindOptions, Options: ids}, nil
	},
	isValidValue: func(s *Strategy, v Value) string {
		if len(v.Options) == 0 {
			return "no option selected"
		}
		if !s.Multiple && len(v.Options) != 1 {
			return "exactly one option must be selected"
		}
		seen := make(map[int]bool, len(v.Options))
		for _, id := range v.Options {
			if id < s.Min || id > s.Max {
				return "option " + strconv.Itoa(id) + " is not in the catalog"
			}
			if seen[id] {
				return "option " + strconv.Itoa(id) + " selected twice"
			}
			seen[id] = true
		}
		return ""
	},
	valueToString: func(v Value) string {
		parts := make([]string, len(v.Options))
		for i, id := range v.Options {
			parts[i] = strconv.Itoa(id)
		}
		return strings.Join(parts, ",")
	},
}

type strategyBuilder func(q *model.Question, l Limits) (Strategy, error)

func interval(min, max int) strategyBuilder {
	return func(q *model.Question, _ Limits) (Strategy, error) {
		return Strategy{Type: q.QuestionType, Min: min, Max: max, fam: intervalFamily}, nil
	}
}

var strategyTable = map[model.QuestionType]strategyBuilder{
	model.QuestionYesNo: func(q *model.Question, _ Limits) (Strategy, error) {
		return Strategy{Type: q.QuestionType, fam: booleanFamily}, nil
	},
	model.QuestionGoodBad: func(q *model.Question, _ Limits) (Strategy, error) {
		return Strategy{Type: q.QuestionType, fam: booleanFamily}, nil
	},
	model.QuestionStarThree: interval(1, 3),
	model.QuestionStarFive:  interval(1, 5),
	model.QuestionOneToTen:  interval(1, 10),
	model.QuestionOpenAnswer: func(q *model.Question, l Limits) (Strategy, error) {
		max := l.OpenAnswerMaxLength
		if max <= 0 {
			max = util.DefaultOpenAnswerMaxLength
		}
		return Strategy{Type: q.QuestionType, MaxLength: max, fam: openTextFamily}, nil
	},
	model.QuestionCustomized: func(q *model.Question, _ Limits) (Strategy, error) {
		if q.OptionGroup == nil || len(q.OptionGroup.Options) == 0 {
			return Strategy{}, util.InvalidOptionCatalog("question %s has no options", q.ID)
		}
		return Strategy{
			Type:     q.QuestionType,
			Min:      1,
			Max:      len(q.OptionGroup.Options),
			Multiple: q.OptionGroup.IsMultipleChoice,
			fam:      customizedFamily,
		}, nil
	},
}

// StrategyFor returns the answer strategy of the question's type.
func StrategyFor(q *model.Question, l Limits) (Strategy, error) {
	build, ok := strategyTable[q.QuestionType]
	if !ok {
		return Strategy{}, util.UnknownQuestionType(string(q.QuestionType))
	}
	return build(q, l)
}

// KnownQuestionType reports whether t has a registered strategy.
func KnownQuestionType(t model.QuestionType) bool {
	_, ok := strategyTable[t]
	return ok
}

func (s *Strategy) StringToValue(raw string) (Value, error) {
	return s.fam.stringToValue(s, raw)
}

func (s *Strategy) IsValidValue(v Value) bool {
	return s.fam.isValidValue(s, v) == ""
}

func (s *Strategy) ValueToString(v Value) string {
	return s.fam.valueToString(v)
}

// Parse runs null handling, parsing and validation without retaining the result.
// A nil value with a nil error means an accepted null.
func (s *Strategy) Parse(raw *string) (*Value, error) {
	if raw == nil {
		if s.AllowNull {
			return nil, nil
		}
		return nil, util.InvalidValue("", "a value is required")
	}
	v, err := s.StringToValue(*raw)
	if err != nil {
		return nil, err
	}
	if reason := s.fam.isValidValue(s, v); reason != "" {
		return nil, util.InvalidValue(*raw, reason)
	}
	return &v, nil
}

// Assignment retains the single value accepted by a strategy.
type Assignment struct {
	Strategy Strategy

	assigned bool
	value    *Value
}

func NewAssignment(s Strategy) *Assignment {
	return &Assignment{Strategy: s}
}

// Assign parses raw and keeps the result. Assigning an equal value again is a no-op;
// a different value requires Reset first.
func (a *Assignment) Assign(raw *string) (*Value, error) {
	v, err := a.Strategy.Parse(raw)
	if err != nil {
		return nil, err
	}
	if a.assigned {
		if !sameValue(a.value, v) {
			shown := ""
			if raw != nil {
				shown = *raw
			}
			return nil, &util.ValueError{Kind: util.ErrValueAlreadyAssigned, Raw: shown}
		}
		return a.value, nil
	}
	a.assigned = true
	a.value = v
	return v, nil
}

// Value returns the retained value and whether one was assigned.
func (a *Assignment) Value() (*Value, bool) {
	return a.value, a.assigned
}

func (a *Assignment) Reset() {
	a.assigned = false
	a.value = nil
}

func sameValue(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.Bool == b.Bool && a.Int == b.Int && a.Text == b.Text &&
		slices.Equal(a.Options, b.Options)
}
