package model

// QuestionType tags the answer format of a question.
type QuestionType string

const (
	QuestionYesNo      QuestionType = "YES_NO"
	QuestionGoodBad    QuestionType = "GOOD_BAD"
	QuestionStarThree  QuestionType = "STAR_THREE"
	QuestionStarFive   QuestionType = "STAR_FIVE"
	QuestionOneToTen   QuestionType = "ONE_TO_TEN"
	QuestionOpenAnswer QuestionType = "OPEN_ANSWER"
	QuestionCustomized QuestionType = "CUSTOMIZED"
)

// QuestionOption is one author-defined choice of a customized question.
type QuestionOption struct {
	ID     int     `json:"id"`
	Text   string  `json:"text"`
	Points float64 `json:"points"`
}

// OptionGroup holds the option catalog of a customized question.
type OptionGroup struct {
	IsMultipleChoice bool             `json:"isMultipleChoice"`
	ShowFlushed      bool             `json:"showFlushed"`
	Options          []QuestionOption `json:"options"`
}

// Option returns the option with the given id.
func (g *OptionGroup) Option(id int) (QuestionOption, bool) {
	if g == nil {
		return QuestionOption{}, false
	}
	for _, o := range g.Options {
		if o.ID == id {
			return o, true
		}
	}
	return QuestionOption{}, false
}

// swagger:model Question
type Question struct {
	UUIDBase
	TenantScoped
	AssessmentMatrixID string       `gorm:"index;type:varchar(36);not null" json:"assessmentMatrixId"`
	Question           string       `gorm:"type:text;not null" json:"question"`
	QuestionType       QuestionType `gorm:"size:32;not null" json:"questionType"`
	Points             float64      `gorm:"default:0" json:"points"`
	OptionGroup        *OptionGroup `gorm:"type:json;serializer:json" json:"optionGroup,omitempty"`
	PillarID           string       `gorm:"index;size:64" json:"pillarId"`
	PillarName         string       `gorm:"size:255" json:"pillarName"`
	CategoryID         string       `gorm:"index;size:64" json:"categoryId"`
	CategoryName       string       `gorm:"size:255" json:"categoryName"`
	Order              int          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// IsMultipleChoice reports whether a customized question accepts several option ids.
func (q *Question) IsMultipleChoice() bool {
	return q.OptionGroup != nil && q.OptionGroup.IsMultipleChoice
}
