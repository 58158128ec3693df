// Package handlers defines HTTP-layer error codes and the error taxonomy used
// across all API endpoints.
//
// Every failure reaching the transport boundary goes through RespondError,
// which is the only place that maps an error to a status code:
//
//	domain.ErrQuestionNotFound          -> 404 question_not_found
//	*pagination.ParseError              -> 416 parse_error
//	pagination.ErrMissingParameters     -> 416 missing_parameters
//	pagination.ErrInvalidParameters     -> 416 invalid_parameters
//	*BodyError, domain.ErrEmptyQuestionID -> 422 unprocessable_entity
//	ErrOriginNotAllowed                 -> 403 forbidden
//	ErrRouteNotFound                    -> 404 not_found
//	ErrMethodNotAllowed                 -> 405 method_not_allowed
//	anything else                       -> 500 internal_error
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "invalid_parameters",
//	  "message": "start must not be greater than end"
//	}
package handlers

import "errors"

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeForbidden        = "forbidden"
	ErrCodeUnprocessable    = "unprocessable_entity"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeQuestionNotFound  = "question_not_found"
	ErrCodeParseError        = "parse_error"
	ErrCodeMissingParameters = "missing_parameters"
	ErrCodeInvalidParameters = "invalid_parameters"
)

var (
	// ErrOriginNotAllowed is raised by the cross-origin policy layer for
	// requests whose Origin is not on the allowlist.
	ErrOriginNotAllowed = errors.New("CORS request forbidden: origin not allowed")

	// ErrRouteNotFound is raised for requests that match no route.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is raised when the path exists under another method.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// BodyError wraps a request body that could not be decoded into the expected
// shape (malformed JSON, missing required field, oversize body).
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string { return "request body deserialize error: " + e.Err.Error() }

func (e *BodyError) Unwrap() error { return e.Err }
