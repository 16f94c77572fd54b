package model

import "time"

// swagger:model Answer
type Answer struct {
	UUIDBase
	TenantScoped
	EmployeeAssessmentID string    `gorm:"uniqueIndex:idx_answer_assessment_question;type:varchar(36);not null" json:"employeeAssessmentId"`
	QuestionID           string    `gorm:"uniqueIndex:idx_answer_assessment_question;type:varchar(36);not null" json:"questionId"`
	PillarID             string    `gorm:"index;size:64" json:"pillarId"`
	CategoryID           string    `gorm:"index;size:64" json:"categoryId"`
	Value                string    `gorm:"type:text" json:"value"`
	Score                *float64  `json:"score"`
	PendingReview        bool      `gorm:"default:false" json:"pendingReview"`
	AnsweredAt           time.Time `json:"answeredAt"`
	Notes                *string   `gorm:"type:text" json:"notes,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}

// ScoreOrZero treats a not yet computed score as zero.
func (a *Answer) ScoreOrZero() float64 {
	if a.Score == nil {
		return 0
	}
	return *a.Score
}
