package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		if stderrors.Is(err, context.DeadlineExceeded) {
			appErr = &errors.AppError{
				Code:    errors.ErrCodeInternal,
				Message: "request timed out",
				Status:  http.StatusGatewayTimeout,
				Err:     err,
			}
		} else {
			appErr = errors.NewInternalError(err)
		}
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	var body errorBody
	body.Error.Code = appErr.Code
	body.Error.Message = appErr.Message
	writeJSON(w, r, appErr.Status, body)
}
