package scoring

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func customizedQuestion(multiple bool, points ...float64) *model.Question {
	group := &model.OptionGroup{IsMultipleChoice: multiple}
	for i, p := range points {
		group.Options = append(group.Options, model.QuestionOption{ID: i + 1, Text: "option", Points: p})
	}
	return &model.Question{QuestionType: model.QuestionCustomized, OptionGroup: group}
}

func mustStrategy(t *testing.T, q *model.Question) Strategy {
	t.Helper()
	s, err := StrategyFor(q, DefaultLimits)
	require.NoError(t, err)
	return s
}

func TestIntervalStrategyBounds(t *testing.T) {
	tests := []struct {
		qType    model.QuestionType
		min, max int
	}{
		{model.QuestionStarThree, 1, 3},
		{model.QuestionStarFive, 1, 5},
		{model.QuestionOneToTen, 1, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.qType), func(t *testing.T) {
			s := mustStrategy(t, &model.Question{QuestionType: tt.qType})
			for v := tt.min - 2; v <= tt.max+2; v++ {
				want := v >= tt.min && v <= tt.max
				assert.Equal(t, want, s.IsValidValue(Value{Kind: KindInt, Int: v}), "value %d", v)
			}
		})
	}
}

func TestStarFiveParse(t *testing.T) {
	s := mustStrategy(t, &model.Question{QuestionType: model.QuestionStarFive})

	v, err := s.Parse(strPtr("4"))
	require.NoError(t, err)
	assert.Equal(t, 4, v.Int)

	_, err = s.Parse(strPtr("6"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
	_, err = s.Parse(strPtr("0"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)

	_, err = s.Parse(strPtr("four"))
	assert.ErrorIs(t, err, util.ErrUnparseableValue)
	assert.NotErrorIs(t, err, util.ErrInvalidValue)

	var verr *util.ValueError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "four", verr.Raw)
}

func TestBooleanParse(t *testing.T) {
	s := mustStrategy(t, &model.Question{QuestionType: model.QuestionYesNo})

	for _, raw := range []string{"true", "TRUE", "True"} {
		v, err := s.Parse(strPtr(raw))
		require.NoError(t, err)
		assert.True(t, v.Bool, raw)
	}
	for _, raw := range []string{"false", "0", "no"} {
		v, err := s.Parse(strPtr(raw))
		require.NoError(t, err)
		assert.False(t, v.Bool, raw)
	}
}

func TestNullHandling(t *testing.T) {
	s := mustStrategy(t, &model.Question{QuestionType: model.QuestionGoodBad})

	_, err := s.Parse(nil)
	assert.ErrorIs(t, err, util.ErrInvalidValue)

	s.AllowNull = true
	v, err := s.Parse(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestOpenAnswerValidity(t *testing.T) {
	s := mustStrategy(t, &model.Question{QuestionType: model.QuestionOpenAnswer})

	_, err := s.Parse(strPtr("Works well with the team."))
	assert.NoError(t, err)

	_, err = s.Parse(strPtr(""))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
	_, err = s.Parse(strPtr("   "))
	assert.ErrorIs(t, err, util.ErrInvalidValue)

	_, err = s.Parse(strPtr(strings.Repeat("a", 500)))
	assert.NoError(t, err)
	_, err = s.Parse(strPtr(strings.Repeat("a", 501)))
	assert.ErrorIs(t, err, util.ErrInvalidValue)

	// length counts characters, not bytes
	_, err = s.Parse(strPtr(strings.Repeat("é", 500)))
	assert.NoError(t, err)
}

func TestCustomizedSingleChoice(t *testing.T) {
	s := mustStrategy(t, customizedQuestion(false, 0, 5, 10))

	v, err := s.Parse(strPtr("2"))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, v.Options)

	_, err = s.Parse(strPtr("1,2"))
	assert.ErrorIs(t, err, util.ErrUnparseableValue)
	_, err = s.Parse(strPtr("b"))
	assert.ErrorIs(t, err, util.ErrUnparseableValue)
	_, err = s.Parse(strPtr("4"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
	_, err = s.Parse(strPtr("0"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
}

func TestCustomizedMultipleChoice(t *testing.T) {
	s := mustStrategy(t, customizedQuestion(true, 0, 5, 10, 15, 20))

	v, err := s.Parse(strPtr("1, 3,5"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, v.Options)

	v, err = s.Parse(strPtr("4"))
	require.NoError(t, err)
	assert.Equal(t, []int{4}, v.Options)

	_, err = s.Parse(strPtr("1,,2"))
	assert.ErrorIs(t, err, util.ErrUnparseableValue)
	_, err = s.Parse(strPtr("1,1"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
	_, err = s.Parse(strPtr("1,6"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)
}

func TestCustomizedWithoutOptions(t *testing.T) {
	_, err := StrategyFor(&model.Question{QuestionType: model.QuestionCustomized}, DefaultLimits)
	assert.ErrorIs(t, err, util.ErrInvalidOptionCatalog)
}

func TestUnknownQuestionType(t *testing.T) {
	_, err := StrategyFor(&model.Question{QuestionType: "SLIDER"}, DefaultLimits)
	assert.ErrorIs(t, err, util.ErrUnknownQuestionType)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		q      *model.Question
		values []Value
	}{
		{"boolean", &model.Question{QuestionType: model.QuestionYesNo}, []Value{
			{Kind: KindBool, Bool: true}, {Kind: KindBool, Bool: false},
		}},
		{"star three", &model.Question{QuestionType: model.QuestionStarThree}, []Value{
			{Kind: KindInt, Int: 1}, {Kind: KindInt, Int: 2}, {Kind: KindInt, Int: 3},
		}},
		{"one to ten", &model.Question{QuestionType: model.QuestionOneToTen}, []Value{
			{Kind: KindInt, Int: 1}, {Kind: KindInt, Int: 7}, {Kind: KindInt, Int: 10},
		}},
		{"open answer", &model.Question{QuestionType: model.QuestionOpenAnswer}, []Value{
			{Kind: KindText, Text: "clear communicator"}, {Kind: KindText, Text: " padded, with comma "},
		}},
		{"single choice", customizedQuestion(false, 1, 2, 3), []Value{
			{Kind: KindOptions, Options: []int{1}}, {Kind: KindOptions, Options: []int{3}},
		}},
		{"multiple choice", customizedQuestion(true, 1, 2, 3, 4), []Value{
			{Kind: KindOptions, Options: []int{2}}, {Kind: KindOptions, Options: []int{4, 1, 3}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustStrategy(t, tt.q)
			for _, v := range tt.values {
				require.True(t, s.IsValidValue(v), "%+v", v)
				back, err := s.StringToValue(s.ValueToString(v))
				require.NoError(t, err)
				assert.Equal(t, v, back)
			}
		})
	}
}

func TestAssignmentSingleAssignment(t *testing.T) {
	a := NewAssignment(mustStrategy(t, &model.Question{QuestionType: model.QuestionStarFive}))

	v, err := a.Assign(strPtr("3"))
	require.NoError(t, err)
	assert.Equal(t, 3, v.Int)

	_, err = a.Assign(strPtr(" 3"))
	assert.NoError(t, err)

	_, err = a.Assign(strPtr("4"))
	assert.ErrorIs(t, err, util.ErrValueAlreadyAssigned)

	got, ok := a.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, got.Int)

	a.Reset()
	v, err = a.Assign(strPtr("4"))
	require.NoError(t, err)
	assert.Equal(t, 4, v.Int)
}

func TestAssignmentFailureKeepsEmpty(t *testing.T) {
	a := NewAssignment(mustStrategy(t, &model.Question{QuestionType: model.QuestionStarThree}))

	_, err := a.Assign(strPtr("9"))
	assert.ErrorIs(t, err, util.ErrInvalidValue)

	_, ok := a.Value()
	assert.False(t, ok)
}
