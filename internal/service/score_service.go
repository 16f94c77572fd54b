package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/scoring"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/tracing"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ScoreService rebuilds the potential and actual score trees.
type ScoreService struct {
	Questions           QuestionStore
	Answers             AnswerStore
	EmployeeAssessments EmployeeAssessmentStore
	Matrices            AssessmentMatrixStore
	now                 func() time.Time
}

func NewScoreService(questions QuestionStore, answers AnswerStore, eas EmployeeAssessmentStore, matrices AssessmentMatrixStore) *ScoreService {
	return &ScoreService{
		Questions:           questions,
		Answers:             answers,
		EmployeeAssessments: eas,
		Matrices:            matrices,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// RecomputePotentialScore rebuilds the matrix's maximum achievable score from its whole catalog and stores it.
func (s *ScoreService) RecomputePotentialScore(ctx context.Context, matrixID, tenantID string) (*model.PotentialScore, error) {
	ctx, span := tracing.StartSpan(ctx, "score.recompute_potential", "matrix.id", matrixID)
	m, err := loadMatrix(ctx, s.Matrices, matrixID, tenantID)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}
	ps, err := s.rebuildPotential(ctx, m)
	if err == nil {
		err = s.Matrices.Save(ctx, m)
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// LockMatrix freezes a matrix for distribution and snapshots its potential score.
func (s *ScoreService) LockMatrix(ctx context.Context, matrixID, tenantID string) (*model.AssessmentMatrix, error) {
	m, err := loadMatrix(ctx, s.Matrices, matrixID, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.rebuildPotential(ctx, m); err != nil {
		return nil, err
	}
	if !m.IsLocked {
		at := s.now()
		m.IsLocked = true
		m.LockedAt = &at
	}
	if err := s.Matrices.Save(ctx, m); err != nil {
		return nil, err
	}
	logger.Log.Info("Assessment matrix locked", zap.String("matrixId", m.ID), zap.String("tenantId", tenantID))
	return m, nil
}

func (s *ScoreService) rebuildPotential(ctx context.Context, m *model.AssessmentMatrix) (*model.PotentialScore, error) {
	defer monitoring.ObserveRecompute("potential", time.Now())

	catalog, err := s.Questions.FindByAssessmentMatrixID(ctx, m.ID, m.TenantID)
	if err != nil {
		return nil, err
	}
	ps, err := scoring.BuildPotentialScore(catalog, s.now())
	if err != nil {
		return nil, err
	}
	if err := scoring.VerifyTree(model.ScoreTree(*ps)); err != nil {
		logger.Log.Warn("Potential score tree is inconsistent", zap.String("matrixId", m.ID), zap.Error(err))
	}
	m.PotentialScore = datatypes.NewJSONType(ps)
	return ps, nil
}

// RecomputeActualScore rebuilds one respondent's score tree from the answers already scored at submission.
func (s *ScoreService) RecomputeActualScore(ctx context.Context, employeeAssessmentID, tenantID string) (*model.EmployeeAssessmentScore, error) {
	ea, err := loadEmployeeAssessment(ctx, s.EmployeeAssessments, employeeAssessmentID, tenantID)
	if err != nil {
		return nil, err
	}
	return s.recomputeActual(ctx, ea)
}

func (s *ScoreService) recomputeActual(ctx context.Context, ea *model.EmployeeAssessment) (*model.EmployeeAssessmentScore, error) {
	ctx, span := tracing.StartSpan(ctx, "score.recompute_actual", "employee_assessment.id", ea.ID)
	defer monitoring.ObserveRecompute("actual", time.Now())

	answers, err := s.Answers.FindByEmployeeAssessmentID(ctx, ea.ID, ea.TenantID)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}
	catalog, err := s.Questions.FindByAssessmentMatrixID(ctx, ea.AssessmentMatrixID, ea.TenantID)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	score := scoring.BuildActualScore(answers, catalog, s.now())
	if err := scoring.VerifyTree(model.ScoreTree(*score)); err != nil {
		logger.Log.Warn("Actual score tree is inconsistent", zap.String("employeeAssessmentId", ea.ID), zap.Error(err))
	}
	err = s.EmployeeAssessments.SaveScore(ctx, ea.ID, score)
	tracing.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	ea.EmployeeAssessmentScore = datatypes.NewJSONType(score)
	logger.Log.Info("Actual score recomputed",
		zap.String("employeeAssessmentId", ea.ID),
		zap.Float64("score", score.Score),
		zap.Int("answers", len(answers)))
	return score, nil
}
