package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AssessmentController struct {
	Answers    *service.AnswerService
	Navigation *service.NavigationService
	Validator  *validator.Validate
}

func NewAssessmentController(answers *service.AnswerService, navigation *service.NavigationService) *AssessmentController {
	return &AssessmentController{Answers: answers, Navigation: navigation, Validator: validator.New()}
}

type ValidateEmployeeRequest struct {
	Email              string `json:"email" validate:"required,email"`
	AssessmentMatrixID string `json:"assessmentMatrixId" validate:"required"`
}

type SubmitAnswerRequest struct {
	QuestionID string    `json:"questionId" validate:"required"`
	AnsweredAt time.Time `json:"answeredAt" validate:"required"`
	Value      *string   `json:"value"`
	Notes      *string   `json:"notes" validate:"omitempty,max=2000"`
}

func (r SubmitAnswerRequest) toService(employeeAssessmentID, tenantID string) service.SubmitAnswerRequest {
	return service.SubmitAnswerRequest{
		EmployeeAssessmentID: employeeAssessmentID,
		QuestionID:           r.QuestionID,
		AnsweredAt:           r.AnsweredAt,
		Value:                r.Value,
		TenantID:             tenantID,
		Notes:                r.Notes,
	}
}

// @Summary Validate a respondent by email
// @Tags assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ValidateEmployeeRequest true "email and matrix"
// @Success 200 {object} util.Response
// @Router /api/assessments/validate [post]
func (c *AssessmentController) ValidateEmployee(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var req ValidateEmployeeRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	resp, err := c.Navigation.ValidateEmployee(ctx.Request.Context(), req.Email, req.AssessmentMatrixID, tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Next unanswered question
// @Tags assessment
// @Produce json
// @Security BearerAuth
// @Param id path string true "employee assessment id"
// @Success 200 {object} util.Response
// @Router /api/employee-assessments/{id}/next-question [get]
func (c *AssessmentController) GetNextQuestion(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}

	resp, err := c.Navigation.GetNextUnansweredQuestion(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Submit one answer
// @Tags assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "employee assessment id"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/employee-assessments/{id}/answers [post]
func (c *AssessmentController) SubmitAnswer(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	answer, err := c.Answers.SubmitAnswer(ctx.Request.Context(), req.toService(ctx.Param("id"), tenantID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary Submit one answer and get the next question
// @Tags assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "employee assessment id"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/employee-assessments/{id}/answers/next [post]
func (c *AssessmentController) SaveAnswerAndGetNext(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	resp, err := c.Navigation.SaveAnswerAndGetNext(ctx.Request.Context(), req.toService(ctx.Param("id"), tenantID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
