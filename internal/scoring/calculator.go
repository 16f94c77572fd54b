package scoring

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"strconv"
)

// Calculator turns an accepted answer value into points. It does not re-validate.
type Calculator func(q *model.Question, v Value) (float64, error)

func booleanScore(q *model.Question, v Value) (float64, error) {
	if v.Bool {
		return q.Points, nil
	}
	return 0, nil
}

func intervalScore(size int) Calculator {
	return func(q *model.Question, v Value) (float64, error) {
		return q.Points / float64(size) * float64(v.Int), nil
	}
}

func openTextScore(*model.Question, Value) (float64, error) {
	return 0, nil
}

func customizedScore(q *model.Question, v Value) (float64, error) {
	var total float64
	for _, id := range v.Options {
		opt, ok := q.OptionGroup.Option(id)
		if !ok {
			return 0, util.InvalidValue(strconv.Itoa(id), "option is not in the catalog")
		}
		total += opt.Points
		if !q.IsMultipleChoice() {
			break
		}
	}
	return total, nil
}

var calculatorTable = map[model.QuestionType]Calculator{
	model.QuestionYesNo:      booleanScore,
	model.QuestionGoodBad:    booleanScore,
	model.QuestionStarThree:  intervalScore(3),
	model.QuestionStarFive:   intervalScore(5),
	model.QuestionOneToTen:   intervalScore(10),
	model.QuestionOpenAnswer: openTextScore,
	model.QuestionCustomized: customizedScore,
}

// CalculatorFor returns the calculator of a question type; an unmapped type is a configuration error.
func CalculatorFor(t model.QuestionType) (Calculator, error) {
	calc, ok := calculatorTable[t]
	if !ok {
		return nil, util.UnknownQuestionType(string(t))
	}
	return calc, nil
}

// Score computes the points of an accepted value.
func Score(q *model.Question, v Value) (float64, error) {
	calc, err := CalculatorFor(q.QuestionType)
	if err != nil {
		return 0, err
	}
	return calc(q, v)
}

// ScoreRaw parses an already validated raw value and scores it.
func ScoreRaw(q *model.Question, raw string) (float64, error) {
	s, err := StrategyFor(q, DefaultLimits)
	if err != nil {
		return 0, err
	}
	v, err := s.StringToValue(raw)
	if err != nil {
		return 0, err
	}
	return Score(q, v)
}

// MaxScore is the best achievable score of a question: its points for fixed scales,
// the sum of all options for multiple choice and the best option for single choice.
func MaxScore(q *model.Question) (float64, error) {
	if !KnownQuestionType(q.QuestionType) {
		return 0, util.UnknownQuestionType(string(q.QuestionType))
	}
	if q.QuestionType != model.QuestionCustomized {
		return q.Points, nil
	}
	if q.OptionGroup == nil || len(q.OptionGroup.Options) == 0 {
		return 0, util.InvalidOptionCatalog("question %s has no options", q.ID)
	}
	if q.OptionGroup.IsMultipleChoice {
		var sum float64
		for _, o := range q.OptionGroup.Options {
			sum += o.Points
		}
		return sum, nil
	}
	best := q.OptionGroup.Options[0].Points
	for _, o := range q.OptionGroup.Options[1:] {
		if o.Points > best {
			best = o.Points
		}
	}
	return best, nil
}
