package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessassist/internal/errors"
)

func TestAppError_ErrorIncludesWrapped(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.NewNetworkError("fetch games", cause)

	assert.Equal(t, "NETWORK_ERROR: fetch games (connection refused)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestAppError_ErrorWithoutWrapped(t *testing.T) {
	err := errors.NewNotFoundError("opening", "Z99")
	assert.Equal(t, "NOT_FOUND: opening not found: Z99", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", errors.NewConfigError("STOCKFISH_PATH", stderrors.New("missing")))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConfig, appErr.Code)
	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeConfig))
	assert.False(t, errors.HasCode(wrapped, errors.ErrCodeEngine))
}

func TestAs_PlainError(t *testing.T) {
	_, ok := errors.As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, errors.HasCode(nil, errors.ErrCodeInternal))
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"validation", errors.NewValidationError("count", "must be positive"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"bad request", errors.NewBadRequestError("missing body"), errors.ErrCodeBadRequest, http.StatusBadRequest},
		{"internal", errors.NewInternalError(stderrors.New("boom")), errors.ErrCodeInternal, http.StatusInternalServerError},
		{"parse", errors.NewParseError("pgn", nil), errors.ErrCodeParse, http.StatusUnprocessableEntity},
		{"engine", errors.NewEngineError("engine did not start", nil), errors.ErrCodeEngine, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}
