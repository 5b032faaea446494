package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-admin-server/internal/lifecycle"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Error:   errorMessage,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 Conflict error response. Used when a conditional
// update lost the race; the client must re-fetch before deciding again.
func Conflict(c *gin.Context, errorMessage string) {
	Error(c, http.StatusConflict, errorMessage)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnprocessableEntity, errorMessage)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, errorMessage)
}

// LifecycleError maps a lifecycle error to the matching HTTP response.
// MissingReason and PastDate are form-validation errors, Unauthorized is a
// permissions problem, and InvalidTransition means the UI offered (or a
// client requested) a transition the rules reject.
func LifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrMissingReason), errors.Is(err, lifecycle.ErrPastDate):
		BadRequest(c, err.Error())
	case errors.Is(err, lifecycle.ErrUnauthorized):
		Forbidden(c, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		UnprocessableEntity(c, err.Error())
	default:
		InternalServerError(c, err.Error())
	}
}
