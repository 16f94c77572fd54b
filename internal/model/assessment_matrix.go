package model

import (
	"time"

	"gorm.io/datatypes"
)

// NavigationMode decides in which order unanswered questions are served.
type NavigationMode string

const (
	NavigationRandom     NavigationMode = "RANDOM"
	NavigationSequential NavigationMode = "SEQUENTIAL"
	NavigationFreeForm   NavigationMode = "FREE_FORM"
)

type AssessmentConfiguration struct {
	AllowQuestionReview bool           `json:"allowQuestionReview"`
	RequireAllQuestions bool           `json:"requireAllQuestions"`
	AutoSave            bool           `json:"autoSave"`
	NavigationMode      NavigationMode `json:"navigationMode"`
}

// swagger:model AssessmentMatrix
type AssessmentMatrix struct {
	UUIDBase
	TenantScoped
	Name               string                             `gorm:"size:255;not null" json:"name"`
	Description        string                             `gorm:"type:text" json:"description"`
	PerformanceCycleID string                             `gorm:"index;size:64" json:"performanceCycleId"`
	Configuration      *AssessmentConfiguration           `gorm:"type:json;serializer:json" json:"configuration,omitempty"`
	IsLocked           bool                               `gorm:"default:false" json:"isLocked"`
	LockedAt           *time.Time                         `json:"lockedAt,omitempty"`
	PotentialScore     datatypes.JSONType[*PotentialScore] `json:"potentialScore"`
}

func (AssessmentMatrix) TableName() string {
	return "assessment_matrices"
}

// NavigationModeOr returns the matrix's own navigation mode, or fallback when it has none.
func (m *AssessmentMatrix) NavigationModeOr(fallback NavigationMode) NavigationMode {
	if m.Configuration != nil && m.Configuration.NavigationMode != "" {
		return m.Configuration.NavigationMode
	}
	return fallback
}
