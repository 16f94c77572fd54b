package scoring

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"strconv"
	"strings"
)

// ValidateOptionGroup enforces the authoring rules of a customized option catalog:
// 2..64 options, ids forming the dense sequence 1..N, and non-empty texts.
func ValidateOptionGroup(g *model.OptionGroup) error {
	if g == nil || len(g.Options) == 0 {
		return util.InvalidOptionCatalog("option list is empty")
	}
	n := len(g.Options)
	if n < util.MinOptionCount {
		return util.InvalidOptionCatalog("at least %d options are required, got %d", util.MinOptionCount, n)
	}
	if n > util.MaxOptionCount {
		return util.InvalidOptionCatalog("at most %d options are allowed, got %d", util.MaxOptionCount, n)
	}
	seen := make(map[int]bool, n)
	for _, o := range g.Options {
		if o.ID < 1 || o.ID > n {
			return util.InvalidOptionCatalog("option id %d is outside 1..%d", o.ID, n)
		}
		if seen[o.ID] {
			return util.InvalidOptionCatalog("option id %d is duplicated", o.ID)
		}
		seen[o.ID] = true
		if strings.TrimSpace(o.Text) == "" {
			return util.InvalidOptionCatalog("option %d has empty text", o.ID)
		}
	}
	return nil
}

// ValidateQuestion checks a question at authoring time.
func ValidateQuestion(q *model.Question) error {
	if !KnownQuestionType(q.QuestionType) {
		return util.UnknownQuestionType(string(q.QuestionType))
	}
	if q.QuestionType == model.QuestionCustomized {
		return ValidateOptionGroup(q.OptionGroup)
	}
	if q.Points < 0 {
		return util.InvalidValue(strconv.FormatFloat(q.Points, 'f', -1, 64), "points must not be negative")
	}
	return nil
}
