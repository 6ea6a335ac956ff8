package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE_ERROR"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Details is the cause's message, exposed to clients for storage failures.
func (e *AppError) Details() string {
	if e.Err == nil || e.Code != CodeStorage {
		return ""
	}
	return e.Err.Error()
}

// Validation reports malformed or missing input. The message is taken from err.
func Validation(err error) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    err.Error(),
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

func NotFound(err error) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    err.Error(),
		StatusCode: http.StatusNotFound,
		Err:        err,
	}
}

func Storage(message string, err error) *AppError {
	return &AppError{
		Code:       CodeStorage,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func Conflict(err error) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    err.Error(),
		StatusCode: http.StatusConflict,
		Err:        err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// Wrap keeps an existing AppError's classification and treats anything else
// as a storage failure described by message.
func Wrap(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage(message, err)
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
