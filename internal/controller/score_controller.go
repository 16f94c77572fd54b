package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	Scores *service.ScoreService
}

func NewScoreController(scores *service.ScoreService) *ScoreController {
	return &ScoreController{Scores: scores}
}

// @Summary Recompute the potential score of a matrix
// @Tags score
// @Produce json
// @Security BearerAuth
// @Param id path string true "matrix id"
// @Success 200 {object} util.Response
// @Router /api/matrices/{id}/potential-score [post]
func (c *ScoreController) RecomputePotentialScore(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	ps, err := c.Scores.RecomputePotentialScore(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ps)
}

// @Summary Lock a matrix for distribution
// @Tags score
// @Produce json
// @Security BearerAuth
// @Param id path string true "matrix id"
// @Success 200 {object} util.Response
// @Router /api/matrices/{id}/lock [post]
func (c *ScoreController) LockMatrix(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	m, err := c.Scores.LockMatrix(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// @Summary Recompute the actual score of a respondent
// @Tags score
// @Produce json
// @Security BearerAuth
// @Param id path string true "employee assessment id"
// @Success 200 {object} util.Response
// @Router /api/employee-assessments/{id}/score [post]
func (c *ScoreController) RecomputeActualScore(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	score, err := c.Scores.RecomputeActualScore(ctx.Request.Context(), ctx.Param("id"), tenantID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, score)
}
