package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/scoring"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"context"
	"strings"

	"go.uber.org/zap"
)

type QuestionRequest struct {
	AssessmentMatrixID string             `json:"assessmentMatrixId" validate:"required"`
	Question           string             `json:"question" validate:"required,max=2000"`
	QuestionType       model.QuestionType `json:"questionType" validate:"required"`
	Points             float64            `json:"points" validate:"gte=0"`
	OptionGroup        *model.OptionGroup `json:"optionGroup"`
	PillarID           string             `json:"pillarId" validate:"required"`
	PillarName         string             `json:"pillarName"`
	CategoryID         string             `json:"categoryId" validate:"required"`
	CategoryName       string             `json:"categoryName"`
	Order              int                `json:"order"`
}

// QuestionService authors the question catalog of a matrix. Option catalogs are checked here,
// before any answer can depend on them.
type QuestionService struct {
	Questions QuestionWriter
	Matrices  AssessmentMatrixStore
}

func NewQuestionService(questions QuestionWriter, matrices AssessmentMatrixStore) *QuestionService {
	return &QuestionService{Questions: questions, Matrices: matrices}
}

func (r *QuestionRequest) apply(q *model.Question) {
	q.Question = strings.TrimSpace(r.Question)
	q.QuestionType = model.QuestionType(strings.ToUpper(strings.TrimSpace(string(r.QuestionType))))
	q.Points = r.Points
	q.OptionGroup = r.OptionGroup
	q.PillarID = r.PillarID
	q.PillarName = r.PillarName
	q.CategoryID = r.CategoryID
	q.CategoryName = r.CategoryName
	q.Order = r.Order
}

// editableMatrix loads the matrix a catalog change targets and refuses locked ones, whose
// potential score and question total are already in use.
func (s *QuestionService) editableMatrix(ctx context.Context, matrixID, tenantID string) error {
	m, err := loadMatrix(ctx, s.Matrices, matrixID, tenantID)
	if err != nil {
		return err
	}
	if m.IsLocked {
		return util.MatrixLocked(matrixID)
	}
	return nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, tenantID string, req QuestionRequest) (*model.Question, error) {
	if err := s.editableMatrix(ctx, req.AssessmentMatrixID, tenantID); err != nil {
		return nil, err
	}
	q := &model.Question{
		TenantScoped:       model.TenantScoped{TenantID: tenantID},
		AssessmentMatrixID: req.AssessmentMatrixID,
	}
	req.apply(q)
	if err := scoring.ValidateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Create(ctx, q); err != nil {
		return nil, err
	}
	logger.Log.Info("Question created",
		zap.String("questionId", q.ID),
		zap.String("matrixId", q.AssessmentMatrixID),
		zap.String("type", string(q.QuestionType)))
	return q, nil
}

// UpdateQuestion replaces the editable fields; a question never moves to another matrix.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id, tenantID string, req QuestionRequest) (*model.Question, error) {
	q, err := loadQuestion(ctx, s.Questions, id, tenantID)
	if err != nil {
		return nil, err
	}
	if req.AssessmentMatrixID != "" && req.AssessmentMatrixID != q.AssessmentMatrixID {
		return nil, util.NotFound("question", id)
	}
	if err := s.editableMatrix(ctx, q.AssessmentMatrixID, tenantID); err != nil {
		return nil, err
	}
	req.apply(q)
	if err := scoring.ValidateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.Questions.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id, tenantID string) (*model.Question, error) {
	return loadQuestion(ctx, s.Questions, id, tenantID)
}

func (s *QuestionService) ListQuestions(ctx context.Context, matrixID, tenantID string) ([]model.Question, error) {
	if _, err := loadMatrix(ctx, s.Matrices, matrixID, tenantID); err != nil {
		return nil, err
	}
	return s.Questions.FindByAssessmentMatrixID(ctx, matrixID, tenantID)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id, tenantID string) error {
	q, err := loadQuestion(ctx, s.Questions, id, tenantID)
	if err != nil {
		return err
	}
	if err := s.editableMatrix(ctx, q.AssessmentMatrixID, tenantID); err != nil {
		return err
	}
	if err := s.Questions.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Question deleted", zap.String("questionId", id), zap.String("matrixId", q.AssessmentMatrixID))
	return nil
}
