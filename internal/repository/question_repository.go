package repository

import (
	"assessment_backend/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find question %s", id)
	}
	return &q, nil
}

// FindByAssessmentMatrixID returns the catalog in its authored order.
func (r *QuestionRepository) FindByAssessmentMatrixID(ctx context.Context, matrixID, tenantID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("assessment_matrix_id = ? AND tenant_id = ?", matrixID, tenantID).
		Order("`order` asc, created_at asc, id asc").
		Find(&qs).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list questions of matrix %s", matrixID)
	}
	return qs, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return pkgerrors.Wrap(r.DB.WithContext(ctx).Create(q).Error, "create question")
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return pkgerrors.Wrapf(r.DB.WithContext(ctx).Save(q).Error, "update question %s", q.ID)
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	return pkgerrors.Wrapf(r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Question{}).Error, "delete question %s", id)
}
