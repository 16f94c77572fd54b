package app

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/middleware"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerRespondentRoutes(api, c)
		a.registerManagerRoutes(api, c)
	}
}

// Respondent routes drive one employee assessment from validation to completion.
func (a *App) registerRespondentRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/assessments/validate", c.assessment.ValidateEmployee)

	ea := api.Group("/employee-assessments/:id")
	{
		ea.GET("/next-question", c.assessment.GetNextQuestion)
		ea.POST("/answers", c.assessment.SubmitAnswer)
		ea.POST("/answers/next", c.assessment.SaveAnswerAndGetNext)
	}
}

func (a *App) registerManagerRoutes(api *gin.RouterGroup, c *controllers) {
	manager := api.Group("/")
	manager.Use(middleware.RoleMiddleware(util.RoleManager))
	{
		manager.POST("/employee-assessments/:id/score", c.score.RecomputeActualScore)

		manager.GET("/matrices/:id/questions", c.question.ListQuestions)
		manager.POST("/matrices/:id/questions", c.question.CreateQuestion)
		manager.POST("/matrices/:id/potential-score", c.score.RecomputePotentialScore)
		manager.POST("/matrices/:id/lock", c.score.LockMatrix)

		manager.GET("/questions/:id", c.question.GetQuestion)
		manager.PUT("/questions/:id", c.question.UpdateQuestion)
		manager.DELETE("/questions/:id", c.question.DeleteQuestion)
	}
}
