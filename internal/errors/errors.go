package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	ErrCodeProblemNotFound     = "PROBLEM_NOT_FOUND"
	ErrCodeProblemLoadFailed   = "PROBLEM_LOAD_FAILED"
	ErrCodeTransportFailed     = "SUBMISSION_TRANSPORT_FAILED"
	ErrCodeAuthRequired        = "AUTHENTICATION_REQUIRED"
	ErrCodeSubmissionInFlight  = "SUBMISSION_IN_FLIGHT"
	ErrCodeAttemptCompleted    = "ATTEMPT_COMPLETED"
	ErrCodeAttemptNotCompleted = "ATTEMPT_NOT_COMPLETED"
	ErrCodeNoProblem           = "NO_PROBLEM_LOADED"
	ErrCodeStaleLoad           = "STALE_LOAD"
	ErrCodeStaleResult         = "STALE_RESULT"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewProblemNotFoundError is returned when the backend has no problem with id.
func NewProblemNotFoundError(id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeProblemNotFound,
		Message: fmt.Sprintf("problem %v does not exist", id),
		Status:  404,
	}
}

// NewProblemLoadFailedError wraps any other failure fetching a problem.
func NewProblemLoadFailedError(id interface{}, err error) *AppError {
	return &AppError{
		Code:    ErrCodeProblemLoadFailed,
		Message: fmt.Sprintf("failed to load problem %v", id),
		Status:  502,
		Err:     err,
	}
}

// NewTransportFailedError wraps a network failure while submitting. The
// attempt is untouched and the user may resubmit.
func NewTransportFailedError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeTransportFailed,
		Message: "submission could not reach the judge",
		Status:  502,
		Err:     err,
	}
}

// NewAuthenticationRequiredError signals a missing or rejected credential.
func NewAuthenticationRequiredError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthRequired,
		Message: reason,
		Status:  401,
	}
}

func NewSubmissionInFlightError() *AppError {
	return &AppError{
		Code:    ErrCodeSubmissionInFlight,
		Message: "a submission is already being judged",
		Status:  409,
	}
}

func NewAttemptCompletedError() *AppError {
	return &AppError{
		Code:    ErrCodeAttemptCompleted,
		Message: "attempt already passed; load another problem to continue",
		Status:  409,
	}
}

func NewAttemptNotCompletedError() *AppError {
	return &AppError{
		Code:    ErrCodeAttemptNotCompleted,
		Message: "attempt has not passed yet",
		Status:  409,
	}
}

func NewNoProblemError() *AppError {
	return &AppError{
		Code:    ErrCodeNoProblem,
		Message: "no problem is loaded",
		Status:  409,
	}
}

// NewStaleLoadError is returned by a load that was overtaken by a newer one.
func NewStaleLoadError(id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStaleLoad,
		Message: fmt.Sprintf("load of problem %v superseded by a newer navigation", id),
		Status:  409,
	}
}

// NewStaleResultError is returned when a judge result arrives after the user
// navigated to another problem; the result is dropped.
func NewStaleResultError(id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStaleResult,
		Message: fmt.Sprintf("result for problem %v discarded after navigation", id),
		Status:  409,
	}
}
