package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/citely/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Source"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate_limited", apperr.RateLimited("slow down"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"upstream", apperr.UpstreamFailure("down", nil), http.StatusInternalServerError, "UPSTREAM_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestInternal_NamesCause(t *testing.T) {
	assert.Equal(t, "Internal error", apperr.Internal(nil).Message)
	assert.Equal(t, "Internal error: boom", apperr.Internal(errors.New("boom")).Message)
}

/*
TestHelpers verifies AppErrors are found through wrapping and that the cause
chain stays reachable.
*/
func TestHelpers(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("populate: %w", apperr.UpstreamFailure("down", cause))

	assert.NotNil(t, apperr.As(wrapped))
	assert.True(t, apperr.HasCode(wrapped, "UPSTREAM_FAILURE"))
	assert.False(t, apperr.HasCode(wrapped, "NOT_FOUND"))
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, apperr.As(cause))
	assert.Nil(t, apperr.As(nil))
}
