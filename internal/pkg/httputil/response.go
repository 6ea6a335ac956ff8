package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/pkg/apperror"
)

const (
	UsernameKey  = "username"
	RequestIDKey = "request_id"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: GetRequestID(c),
	})
}

func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     err.Error(),
		Code:      apperror.CodeValidation,
		RequestID: GetRequestID(c),
	})
}

// HandleError renders err as JSON. Errors that are not an AppError are
// reported as a bare 500 without their message.
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}

	c.JSON(appErr.StatusCode, ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		Details:   appErr.Details(),
		RequestID: GetRequestID(c),
	})
}

// GetUsername returns the name attributed to the request, Anonymous when the
// identity middleware did not resolve one.
func GetUsername(c *gin.Context) string {
	if name := c.GetString(UsernameKey); name != "" {
		return name
	}
	return entity.AnonymousUsername
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
