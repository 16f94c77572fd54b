package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type QuestionController struct {
	Service   *service.QuestionService
	Validator *validator.Validate
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc, Validator: validator.New()}
}

// @Summary Create a question
// @Tags question
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "matrix id"
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/matrices/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.AssessmentMatrixID = ctx.Param("id")
	if err := c.Validator.Struct(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(ctx.Request.Context(), tenantID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary List the questions of a matrix
// @Tags question
// @Produce json
// @Security BearerAuth
// @Param id path string true "matrix id"
// @Success 200 {object} util.Response
// @Router /api/matrices/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	qs, err := c.Service.ListQuestions(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	q, err := c.Service.GetQuestion(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary Update a question
// @Tags question
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Validator.StructExcept(&req, "AssessmentMatrixID"); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), tenantID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.Service.DeleteQuestion(ctx.Request.Context(), ctx.Param("id"), tenantID); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
