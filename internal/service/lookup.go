package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"context"
)

// Rows owned by another tenant are reported exactly like missing rows.

func loadQuestion(ctx context.Context, store QuestionStore, id, tenantID string) (*model.Question, error) {
	q, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil || !q.BelongsTo(tenantID) {
		return nil, util.NotFound("question", id)
	}
	return q, nil
}

func loadEmployeeAssessment(ctx context.Context, store EmployeeAssessmentStore, id, tenantID string) (*model.EmployeeAssessment, error) {
	ea, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ea == nil || !ea.BelongsTo(tenantID) {
		return nil, util.NotFound("employee assessment", id)
	}
	return ea, nil
}

func loadMatrix(ctx context.Context, store AssessmentMatrixStore, id, tenantID string) (*model.AssessmentMatrix, error) {
	m, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.BelongsTo(tenantID) {
		return nil, util.NotFound("assessment matrix", id)
	}
	return m, nil
}
