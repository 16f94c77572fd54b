package service

import (
	"assessment_backend/internal/model"
	"context"
	"time"
)

// QuestionStore is the read side of the question catalog. Lookups return nil, nil when absent.
type QuestionStore interface {
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindByAssessmentMatrixID(ctx context.Context, matrixID, tenantID string) ([]model.Question, error)
}

// QuestionWriter adds the authoring operations.
type QuestionWriter interface {
	QuestionStore
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id string) error
}

type EmployeeAssessmentStore interface {
	FindByID(ctx context.Context, id string) (*model.EmployeeAssessment, error)
	// FindByMatrixAndEmail matches the email case-insensitively.
	FindByMatrixAndEmail(ctx context.Context, matrixID, email, tenantID string) (*model.EmployeeAssessment, error)
	Save(ctx context.Context, ea *model.EmployeeAssessment) error
	// RefreshAnsweredQuestionCount sets the stored counter to the number of answers to questions still
	// in the matrix catalog and returns it.
	RefreshAnsweredQuestionCount(ctx context.Context, id string) (int, error)
	// TouchLastActivity stamps at unless the assessment is already COMPLETED.
	TouchLastActivity(ctx context.Context, id string, at time.Time) error
	// CompareAndSetStatus moves id from -> to and reports whether this call made the change.
	CompareAndSetStatus(ctx context.Context, id string, from, to model.AssessmentStatus) (bool, error)
	SaveScore(ctx context.Context, id string, score *model.EmployeeAssessmentScore) error
}

type AnswerStore interface {
	FindByEmployeeAssessmentID(ctx context.Context, employeeAssessmentID, tenantID string) ([]model.Answer, error)
	FindAnsweredQuestionIDs(ctx context.Context, employeeAssessmentID, tenantID string) (map[string]struct{}, error)
	FindByEmployeeAssessmentAndQuestion(ctx context.Context, employeeAssessmentID, questionID string) (*model.Answer, error)
	Save(ctx context.Context, a *model.Answer) error
}

type AssessmentMatrixStore interface {
	FindByID(ctx context.Context, id string) (*model.AssessmentMatrix, error)
	Save(ctx context.Context, m *model.AssessmentMatrix) error
}

// SubmissionLocker serialises work on one employee assessment across processes.
type SubmissionLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
