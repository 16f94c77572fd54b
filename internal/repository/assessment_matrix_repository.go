package repository

import (
	"assessment_backend/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type AssessmentMatrixRepository struct {
	DB *gorm.DB
}

func NewAssessmentMatrixRepository(db *gorm.DB) *AssessmentMatrixRepository {
	return &AssessmentMatrixRepository{DB: db}
}

func (r *AssessmentMatrixRepository) FindByID(ctx context.Context, id string) (*model.AssessmentMatrix, error) {
	var m model.AssessmentMatrix
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find assessment matrix %s", id)
	}
	return &m, nil
}

func (r *AssessmentMatrixRepository) Save(ctx context.Context, m *model.AssessmentMatrix) error {
	return pkgerrors.Wrap(r.DB.WithContext(ctx).Save(m).Error, "save assessment matrix")
}
