package api

import (
	"net/http"

	"github.com/vytor/codedrill/internal/attempt"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   errorBody     `json:"error"`
	Attempt *attempt.View `json:"attempt,omitempty"`
}

func toAppError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.NewInternalError(err)
}

func logAppError(log *logger.Logger, appErr *errors.AppError) {
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := toAppError(err)
	logAppError(logger.FromContext(r.Context()), appErr)
	writeJSON(w, r, appErr.Status, errorResponse{
		Error: errorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

// handleAttemptError is handleError plus the attempt snapshot taken when
// the operation finished, so clients can redraw without another round trip.
func handleAttemptError(w http.ResponseWriter, r *http.Request, view attempt.View, err error) {
	appErr := toAppError(err)
	logAppError(logger.FromContext(r.Context()), appErr)
	writeJSON(w, r, appErr.Status, errorResponse{
		Error:   errorBody{Code: appErr.Code, Message: appErr.Message},
		Attempt: &view,
	})
}
