package repository

import (
	"assessment_backend/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmployeeAssessmentRepository struct {
	DB *gorm.DB
}

func NewEmployeeAssessmentRepository(db *gorm.DB) *EmployeeAssessmentRepository {
	return &EmployeeAssessmentRepository{DB: db}
}

func (r *EmployeeAssessmentRepository) FindByID(ctx context.Context, id string) (*model.EmployeeAssessment, error) {
	var ea model.EmployeeAssessment
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&ea).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find employee assessment %s", id)
	}
	return &ea, nil
}

func (r *EmployeeAssessmentRepository) FindByMatrixAndEmail(ctx context.Context, matrixID, email, tenantID string) (*model.EmployeeAssessment, error) {
	var ea model.EmployeeAssessment
	err := r.DB.WithContext(ctx).
		Where("assessment_matrix_id = ? AND tenant_id = ? AND LOWER(employee_email) = ?",
			matrixID, tenantID, strings.ToLower(strings.TrimSpace(email))).
		First(&ea).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find employee assessment of matrix %s by email", matrixID)
	}
	return &ea, nil
}

func (r *EmployeeAssessmentRepository) Save(ctx context.Context, ea *model.EmployeeAssessment) error {
	return pkgerrors.Wrap(r.DB.WithContext(ctx).Save(ea).Error, "save employee assessment")
}

// RefreshAnsweredQuestionCount recounts answers in the same statement that stores the counter,
// so concurrent submissions converge on the true count. Answers to questions that were removed
// from the matrix no longer count.
func (r *EmployeeAssessmentRepository) RefreshAnsweredQuestionCount(ctx context.Context, id string) (int, error) {
	db := r.DB.WithContext(ctx)
	answered := db.Model(&model.Answer{}).Select("COUNT(*)").
		Joins("JOIN questions ON questions.id = answers.question_id AND questions.deleted_at IS NULL").
		Where("answers.employee_assessment_id = ?", id).
		Where("questions.assessment_matrix_id = employee_assessments.assessment_matrix_id")
	err := db.Model(&model.EmployeeAssessment{}).
		Where("id = ?", id).
		Update("answered_question_count", answered).Error
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "refresh answered count of %s", id)
	}

	var count int
	err = db.Model(&model.EmployeeAssessment{}).
		Where("id = ?", id).
		Pluck("answered_question_count", &count).Error
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "read answered count of %s", id)
	}
	return count, nil
}

func (r *EmployeeAssessmentRepository) TouchLastActivity(ctx context.Context, id string, at time.Time) error {
	err := r.DB.WithContext(ctx).Model(&model.EmployeeAssessment{}).
		Where("id = ? AND status <> ?", id, model.StatusCompleted).
		Update("last_activity_date", at).Error
	return pkgerrors.Wrapf(err, "touch last activity of %s", id)
}

func (r *EmployeeAssessmentRepository) CompareAndSetStatus(ctx context.Context, id string, from, to model.AssessmentStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.EmployeeAssessment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, pkgerrors.Wrapf(res.Error, "set status of %s to %s", id, to)
	}
	return res.RowsAffected == 1, nil
}

func (r *EmployeeAssessmentRepository) SaveScore(ctx context.Context, id string, score *model.EmployeeAssessmentScore) error {
	err := r.DB.WithContext(ctx).Model(&model.EmployeeAssessment{}).
		Where("id = ?", id).
		Update("employee_assessment_score", datatypes.NewJSONType(score)).Error
	return pkgerrors.Wrapf(err, "save score of %s", id)
}
