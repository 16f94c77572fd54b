package controller

import (
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(ctx *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return false
	}
	if err := v.Struct(req); err != nil {
		util.BadRequest(ctx, err.Error())
		return false
	}
	return true
}

// tenantOf returns the tenant of the authenticated caller, answering 401 when absent.
func tenantOf(ctx *gin.Context) (string, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil || user.TenantID == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return user.TenantID, true
}
