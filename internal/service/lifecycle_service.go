package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"assessment_backend/internal/workflow"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LifecycleService applies status transitions with compare-and-set so that concurrent
// callers cannot double-transition; only the winner of IN_PROGRESS -> COMPLETED rescores.
type LifecycleService struct {
	EmployeeAssessments EmployeeAssessmentStore
	Scores              *ScoreService
}

func NewLifecycleService(eas EmployeeAssessmentStore, scores *ScoreService) *LifecycleService {
	return &LifecycleService{EmployeeAssessments: eas, Scores: scores}
}

// advance moves ea to `to`. When another caller changed the row first, ea is refreshed and
// advance reports false without error.
func (s *LifecycleService) advance(ctx context.Context, ea *model.EmployeeAssessment, to model.AssessmentStatus) (bool, error) {
	from := ea.Status
	if err := workflow.ValidateTransition(from, to); err != nil {
		return false, err
	}
	won, err := s.EmployeeAssessments.CompareAndSetStatus(ctx, ea.ID, from, to)
	if err != nil {
		return false, err
	}
	if won {
		ea.Status = to
		logger.Log.Info("Employee assessment status changed",
			zap.String("employeeAssessmentId", ea.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)))
		return true, nil
	}

	current, err := s.EmployeeAssessments.FindByID(ctx, ea.ID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, util.NotFound("employee assessment", ea.ID)
	}
	if current.Status == from {
		return false, fmt.Errorf("status of %s did not change from %s", ea.ID, from)
	}
	ea.Status = current.Status
	return false, nil
}

// Transition applies one explicit move and fails when the state changed underneath.
func (s *LifecycleService) Transition(ctx context.Context, ea *model.EmployeeAssessment, to model.AssessmentStatus) error {
	won, err := s.advance(ctx, ea, to)
	if err != nil {
		return err
	}
	if !won {
		return &util.TransitionError{From: string(ea.Status), To: string(to)}
	}
	if to == model.StatusCompleted {
		return s.onCompleted(ctx, ea)
	}
	return nil
}

// Complete walks ea to COMPLETED through legal hops. It returns true only for the caller
// whose swap reached COMPLETED; an already completed assessment is a no-op.
func (s *LifecycleService) Complete(ctx context.Context, ea *model.EmployeeAssessment) (bool, error) {
	for ea.Status != model.StatusCompleted {
		path := workflow.PathToCompleted(ea.Status)
		if len(path) == 0 {
			return false, &util.StatusError{Status: string(ea.Status)}
		}
		next := path[0]
		won, err := s.advance(ctx, ea, next)
		if err != nil {
			return false, err
		}
		if won && next == model.StatusCompleted {
			return true, s.onCompleted(ctx, ea)
		}
	}
	return false, nil
}

func (s *LifecycleService) onCompleted(ctx context.Context, ea *model.EmployeeAssessment) error {
	monitoring.AssessmentsCompleted.Inc()
	if s.Scores == nil {
		return nil
	}
	if _, err := s.Scores.recomputeActual(ctx, ea); err != nil {
		logger.Log.Error("Failed to score completed assessment",
			zap.String("employeeAssessmentId", ea.ID), zap.Error(err))
		return err
	}
	return nil
}
