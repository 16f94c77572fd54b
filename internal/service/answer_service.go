package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/scoring"
	"assessment_backend/internal/util"
	"assessment_backend/internal/workflow"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// SubmitAnswerRequest is one respondent answer as received from the caller.
type SubmitAnswerRequest struct {
	EmployeeAssessmentID string
	QuestionID           string
	AnsweredAt           time.Time
	Value                *string
	TenantID             string
	Notes                *string
}

// AnswerService is the submission orchestrator: it validates, scores and persists one
// answer, then runs the progress side effects.
type AnswerService struct {
	Questions           QuestionStore
	Answers             AnswerStore
	EmployeeAssessments EmployeeAssessmentStore
	Lifecycle           *LifecycleService
	Locker              SubmissionLocker

	tolerance   atomic.Int64
	maxOpenText atomic.Int64
	now         func() time.Time
}

func NewAnswerService(questions QuestionStore, answers AnswerStore, eas EmployeeAssessmentStore, lifecycle *LifecycleService) *AnswerService {
	s := &AnswerService{
		Questions:           questions,
		Answers:             answers,
		EmployeeAssessments: eas,
		Lifecycle:           lifecycle,
		now:                 func() time.Time { return time.Now().UTC() },
	}
	s.SetFutureTolerance(util.DefaultFutureToleranceMinutes * time.Minute)
	s.SetOpenAnswerMaxLength(util.DefaultOpenAnswerMaxLength)
	return s
}

// SetFutureTolerance bounds how far answeredAt may lie ahead of the clock.
func (s *AnswerService) SetFutureTolerance(d time.Duration) {
	s.tolerance.Store(int64(d))
}

func (s *AnswerService) SetOpenAnswerMaxLength(n int) {
	s.maxOpenText.Store(int64(n))
}

func (s *AnswerService) limits() scoring.Limits {
	return scoring.Limits{OpenAnswerMaxLength: int(s.maxOpenText.Load())}
}

// SubmitAnswer creates or updates the respondent's answer to one question. Completing the
// last question moves the assessment to COMPLETED and rescoring happens once, for the
// submission that made that move.
func (s *AnswerService) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (answer *model.Answer, err error) {
	ctx, span := tracing.StartSpan(ctx, "answer.submit",
		"employee_assessment.id", req.EmployeeAssessmentID,
		"question.id", req.QuestionID)
	defer func() {
		if err != nil {
			monitoring.AnswersRejected.WithLabelValues(rejectionKind(err)).Inc()
			logger.Log.Debug("Answer rejected",
				zap.String("employeeAssessmentId", req.EmployeeAssessmentID),
				zap.String("questionId", req.QuestionID),
				zap.Error(err))
		}
		tracing.EndSpan(span, err)
	}()

	now := s.now()
	if limit := now.Add(time.Duration(s.tolerance.Load())); req.AnsweredAt.After(limit) {
		return nil, &util.TemporalError{AnsweredAt: req.AnsweredAt, Limit: limit}
	}

	q, err := loadQuestion(ctx, s.Questions, req.QuestionID, req.TenantID)
	if err != nil {
		return nil, err
	}
	ea, err := loadEmployeeAssessment(ctx, s.EmployeeAssessments, req.EmployeeAssessmentID, req.TenantID)
	if err != nil {
		return nil, err
	}
	if q.AssessmentMatrixID != ea.AssessmentMatrixID {
		return nil, util.NotFound("question", req.QuestionID)
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(ctx, ea.ID)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	existing, err := s.Answers.FindByEmployeeAssessmentAndQuestion(ctx, ea.ID, q.ID)
	if err != nil {
		return nil, err
	}

	strategy, err := scoring.StrategyFor(q, s.limits())
	if err != nil {
		return nil, err
	}
	value, err := scoring.NewAssignment(strategy).Assign(req.Value)
	if err != nil {
		return nil, err
	}

	var score *float64
	if value != nil {
		points, err := scoring.Score(q, *value)
		if err != nil {
			return nil, err
		}
		score = &points
	}

	operation := "update"
	answer = existing
	if answer == nil {
		operation = "create"
		answer = &model.Answer{
			TenantScoped:         model.TenantScoped{TenantID: req.TenantID},
			EmployeeAssessmentID: ea.ID,
			QuestionID:           q.ID,
		}
	}
	answer.PillarID = q.PillarID
	answer.CategoryID = q.CategoryID
	answer.Value = ""
	if req.Value != nil {
		answer.Value = *req.Value
	}
	answer.Score = score
	answer.PendingReview = q.QuestionType == model.QuestionOpenAnswer
	answer.AnsweredAt = req.AnsweredAt
	answer.Notes = req.Notes

	if err := s.Answers.Save(ctx, answer); err != nil {
		return nil, err
	}
	monitoring.AnswersSubmitted.WithLabelValues(string(q.QuestionType), operation).Inc()

	if err := s.afterSave(ctx, ea, now); err != nil {
		return nil, err
	}
	return answer, nil
}

// afterSave refreshes progress and completes the assessment when every question is answered.
func (s *AnswerService) afterSave(ctx context.Context, ea *model.EmployeeAssessment, now time.Time) error {
	count, err := s.EmployeeAssessments.RefreshAnsweredQuestionCount(ctx, ea.ID)
	if err != nil {
		return err
	}
	ea.AnsweredQuestionCount = count

	if ea.Status == model.StatusCompleted {
		return nil
	}
	if err := s.EmployeeAssessments.TouchLastActivity(ctx, ea.ID, now); err != nil {
		return err
	}
	ea.LastActivityDate = &now

	catalog, err := s.Questions.FindByAssessmentMatrixID(ctx, ea.AssessmentMatrixID, ea.TenantID)
	if err != nil {
		return err
	}
	total := len(catalog)
	if total == 0 || count < total {
		return nil
	}
	// The counter only gates the lookup; completion is decided on the same set navigation serves from.
	answered, err := s.Answers.FindAnsweredQuestionIDs(ctx, ea.ID, ea.TenantID)
	if err != nil {
		return err
	}
	if remaining := workflow.Unanswered(catalog, answered); len(remaining) > 0 {
		logger.Log.Warn("Answered counter ahead of catalog",
			zap.String("employeeAssessmentId", ea.ID),
			zap.Int("answered", count),
			zap.Int("remaining", len(remaining)))
		return nil
	}

	completed, err := s.Lifecycle.Complete(ctx, ea)
	if err != nil {
		return err
	}
	if completed {
		logger.Log.Info("Employee assessment completed",
			zap.String("employeeAssessmentId", ea.ID),
			zap.Int("answered", count),
			zap.Int("total", total))
	}
	return nil
}

func rejectionKind(err error) string {
	switch {
	case errors.Is(err, util.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, util.ErrUnparseableValue):
		return "unparseable_value"
	case errors.Is(err, util.ErrValueAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, util.ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, util.ErrStaleTemporal):
		return "stale_temporal"
	case errors.Is(err, util.ErrInvalidStatusTransition):
		return "invalid_transition"
	case errors.Is(err, util.ErrInvalidOptionCatalog):
		return "invalid_option_catalog"
	case errors.Is(err, util.ErrUnknownQuestionType):
		return "unknown_question_type"
	default:
		return "internal"
	}
}
