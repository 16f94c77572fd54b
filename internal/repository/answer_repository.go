package repository

import (
	"assessment_backend/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) FindByEmployeeAssessmentID(ctx context.Context, employeeAssessmentID, tenantID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.WithContext(ctx).
		Where("employee_assessment_id = ? AND tenant_id = ?", employeeAssessmentID, tenantID).
		Order("answered_at asc").
		Find(&answers).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list answers of %s", employeeAssessmentID)
	}
	return answers, nil
}

// FindAnsweredQuestionIDs loads only the question id column.
func (r *AnswerRepository) FindAnsweredQuestionIDs(ctx context.Context, employeeAssessmentID, tenantID string) (map[string]struct{}, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.Answer{}).
		Where("employee_assessment_id = ? AND tenant_id = ?", employeeAssessmentID, tenantID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list answered question ids of %s", employeeAssessmentID)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *AnswerRepository) FindByEmployeeAssessmentAndQuestion(ctx context.Context, employeeAssessmentID, questionID string) (*model.Answer, error) {
	var a model.Answer
	err := r.DB.WithContext(ctx).
		Where("employee_assessment_id = ? AND question_id = ?", employeeAssessmentID, questionID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find answer of %s for question %s", employeeAssessmentID, questionID)
	}
	return &a, nil
}

func (r *AnswerRepository) Save(ctx context.Context, a *model.Answer) error {
	return pkgerrors.Wrap(r.DB.WithContext(ctx).Save(a).Error, "save answer")
}
