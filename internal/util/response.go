package util

import (
	"assessment_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler writes.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// StatusFor maps an engine error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrUnparseableValue),
		errors.Is(err, ErrInvalidOptionCatalog),
		errors.Is(err, ErrStaleTemporal),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidReference):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatusTransition),
		errors.Is(err, ErrValueAlreadyAssigned),
		errors.Is(err, ErrMatrixLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err with the status of its kind; unexpected errors are logged and hidden.
func RespondError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		logger.Log.Error("Internal server error", zap.String("path", c.FullPath()), zap.Error(err))
		InternalServerError(c)
		return
	}
	Error(c, code, err.Error())
}
