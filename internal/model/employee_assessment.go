package model

import (
	"time"

	"gorm.io/datatypes"
)

// AssessmentStatus is the respondent-facing lifecycle state.
type AssessmentStatus string

const (
	StatusInvited    AssessmentStatus = "INVITED"
	StatusConfirmed  AssessmentStatus = "CONFIRMED"
	StatusInProgress AssessmentStatus = "IN_PROGRESS"
	StatusCompleted  AssessmentStatus = "COMPLETED"
)

// swagger:model EmployeeAssessment
type EmployeeAssessment struct {
	UUIDBase
	TenantScoped
	AssessmentMatrixID      string                                      `gorm:"index;type:varchar(36);not null" json:"assessmentMatrixId"`
	EmployeeName            string                                      `gorm:"size:255" json:"name"`
	EmployeeEmail           string                                      `gorm:"index;size:255;not null" json:"email"`
	Status                  AssessmentStatus                            `gorm:"size:20;default:'INVITED'" json:"assessmentStatus"`
	AnsweredQuestionCount   int                                         `gorm:"default:0" json:"answeredQuestionCount"`
	LastActivityDate        *time.Time                                  `json:"lastActivityDate,omitempty"`
	EmployeeAssessmentScore datatypes.JSONType[*EmployeeAssessmentScore] `json:"employeeAssessmentScore"`
}

func (EmployeeAssessment) TableName() string {
	return "employee_assessments"
}

// Score returns the stored actual score tree, nil until first computed.
func (e *EmployeeAssessment) Score() *EmployeeAssessmentScore {
	return e.EmployeeAssessmentScore.Data()
}
