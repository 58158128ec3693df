// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities used across all endpoints: the
// structured error envelope, the error-to-status translation (RespondError)
// and the small helpers for success bodies.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "question_not_found",
//	  "message": "Question not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/pagination"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"question_not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Question not found"`
}

// RespondError translates err into a status code and error envelope and
// aborts the request. It is the single mapping point between error kinds and
// HTTP statuses; see errors.go for the table.
func RespondError(c *gin.Context, err error) {
	var (
		parseErr *pagination.ParseError
		bodyErr  *BodyError
	)
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound):
		fail(c, http.StatusNotFound, ErrCodeQuestionNotFound, "Question not found")
	case errors.As(err, &parseErr):
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeParseError, err.Error())
	case errors.Is(err, pagination.ErrMissingParameters):
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeMissingParameters, err.Error())
	case errors.Is(err, pagination.ErrInvalidParameters):
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeInvalidParameters, err.Error())
	case errors.As(err, &bodyErr), errors.Is(err, domain.ErrEmptyQuestionID):
		fail(c, http.StatusUnprocessableEntity, ErrCodeUnprocessable, err.Error())
	case errors.Is(err, ErrOriginNotAllowed):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, ErrRouteNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	case errors.Is(err, ErrMethodNotAllowed):
		fail(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// ack writes a plain-text acknowledgement.
func ack(c *gin.Context, status int, msg string) {
	c.String(status, msg)
}
