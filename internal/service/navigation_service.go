package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"assessment_backend/internal/workflow"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ValidationStatus is the outcome class of an employee identity check.
type ValidationStatus string

const (
	ValidationSuccess ValidationStatus = "SUCCESS"
	ValidationInfo    ValidationStatus = "INFO"
)

var ErrNoSubmissionResult = errors.New("answer submission returned no result")

type ValidateEmployeeResponse struct {
	Status               ValidationStatus       `json:"status"`
	Message              string                 `json:"message"`
	EmployeeAssessmentID string                 `json:"employeeAssessmentId,omitempty"`
	Name                 string                 `json:"name,omitempty"`
	AssessmentStatus     model.AssessmentStatus `json:"assessmentStatus,omitempty"`
}

type NextQuestionResponse struct {
	Question        *model.Question `json:"question"`
	CurrentProgress int             `json:"currentProgress"`
	TotalQuestions  int             `json:"totalQuestions"`
	// ExistingAnswer is reserved for partial answers and is always nil.
	ExistingAnswer *model.Answer `json:"existingAnswer"`
}

type NavigationService struct {
	Questions           QuestionStore
	Answers             AnswerStore
	EmployeeAssessments EmployeeAssessmentStore
	Matrices            AssessmentMatrixStore
	Lifecycle           *LifecycleService
	Submissions         *AnswerService

	mu          sync.RWMutex
	defaultMode model.NavigationMode
	now         func() time.Time
}

func NewNavigationService(
	questions QuestionStore,
	answers AnswerStore,
	eas EmployeeAssessmentStore,
	matrices AssessmentMatrixStore,
	lifecycle *LifecycleService,
	submissions *AnswerService,
) *NavigationService {
	return &NavigationService{
		Questions:           questions,
		Answers:             answers,
		EmployeeAssessments: eas,
		Matrices:            matrices,
		Lifecycle:           lifecycle,
		Submissions:         submissions,
		defaultMode:         model.NavigationRandom,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// SetDefaultMode sets the mode used for matrices that do not configure one.
func (s *NavigationService) SetDefaultMode(mode model.NavigationMode) {
	s.mu.Lock()
	s.defaultMode = mode
	s.mu.Unlock()
}

func (s *NavigationService) modeFor(m *model.AssessmentMatrix) model.NavigationMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return m.NavigationModeOr(s.defaultMode)
}

// ValidateEmployee matches the respondent by email. The first validation of an invited
// respondent confirms the assessment; later ones only report where they stand.
func (s *NavigationService) ValidateEmployee(ctx context.Context, email, matrixID, tenantID string) (*ValidateEmployeeResponse, error) {
	if _, err := loadMatrix(ctx, s.Matrices, matrixID, tenantID); err != nil {
		return nil, err
	}
	ea, err := s.EmployeeAssessments.FindByMatrixAndEmail(ctx, matrixID, email, tenantID)
	if err != nil {
		return nil, err
	}
	if ea == nil || !ea.BelongsTo(tenantID) {
		return nil, util.NotFound("employee", strings.ToLower(strings.TrimSpace(email)))
	}

	if ea.Status == model.StatusInvited {
		won, err := s.Lifecycle.advance(ctx, ea, model.StatusConfirmed)
		if err != nil {
			return nil, err
		}
		if won {
			if err := s.EmployeeAssessments.TouchLastActivity(ctx, ea.ID, s.now()); err != nil {
				return nil, err
			}
			return &ValidateEmployeeResponse{
				Status:               ValidationSuccess,
				Message:              "Employee validated, assessment confirmed",
				EmployeeAssessmentID: ea.ID,
				Name:                 ea.EmployeeName,
				AssessmentStatus:     ea.Status,
			}, nil
		}
	}

	resp := &ValidateEmployeeResponse{
		Status:               ValidationInfo,
		EmployeeAssessmentID: ea.ID,
		Name:                 ea.EmployeeName,
		AssessmentStatus:     ea.Status,
	}
	switch ea.Status {
	case model.StatusConfirmed, model.StatusInProgress:
		resp.Message = "Welcome back, you can resume your assessment"
	case model.StatusCompleted:
		resp.Message = "This assessment has already been completed"
	default:
		resp.Message = fmt.Sprintf("Assessment status: %s", ea.Status)
	}
	return resp, nil
}

// GetNextUnansweredQuestion serves the next question per the matrix's navigation mode and
// completes the assessment once nothing is left.
func (s *NavigationService) GetNextUnansweredQuestion(ctx context.Context, employeeAssessmentID, tenantID string) (resp *NextQuestionResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "navigation.next_question", "employee_assessment.id", employeeAssessmentID)
	defer func() { tracing.EndSpan(span, err) }()

	ea, err := loadEmployeeAssessment(ctx, s.EmployeeAssessments, employeeAssessmentID, tenantID)
	if err != nil {
		return nil, err
	}
	if ea.Status == model.StatusConfirmed {
		if _, err := s.Lifecycle.advance(ctx, ea, model.StatusInProgress); err != nil {
			return nil, err
		}
	}

	matrix, err := loadMatrix(ctx, s.Matrices, ea.AssessmentMatrixID, tenantID)
	if err != nil {
		return nil, err
	}
	answered, err := s.Answers.FindAnsweredQuestionIDs(ctx, ea.ID, tenantID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Questions.FindByAssessmentMatrixID(ctx, ea.AssessmentMatrixID, tenantID)
	if err != nil {
		return nil, err
	}

	unanswered := workflow.Unanswered(catalog, answered)
	resp = &NextQuestionResponse{
		CurrentProgress: len(catalog) - len(unanswered),
		TotalQuestions:  len(catalog),
	}
	if len(unanswered) == 0 {
		if _, err := s.Lifecycle.Complete(ctx, ea); err != nil {
			return nil, err
		}
		return resp, nil
	}

	mode := s.modeFor(matrix)
	resp.Question = workflow.SelectNext(unanswered, mode, ea.ID)
	logger.Log.Debug("Next question selected",
		zap.String("employeeAssessmentId", ea.ID),
		zap.String("mode", string(mode)),
		zap.String("questionId", resp.Question.ID),
		zap.Int("remaining", len(unanswered)))
	return resp, nil
}

// SaveAnswerAndGetNext submits one answer and then serves the next question.
func (s *NavigationService) SaveAnswerAndGetNext(ctx context.Context, req SubmitAnswerRequest) (*NextQuestionResponse, error) {
	answer, err := s.Submissions.SubmitAnswer(ctx, req)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, ErrNoSubmissionResult
	}
	return s.GetNextUnansweredQuestion(ctx, req.EmployeeAssessmentID, req.TenantID)
}
