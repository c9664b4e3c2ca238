package anthropic

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 429, Message: "rate limit exceeded"}
	assert.Equal(t, "anthropic api error (status 429): rate limit exceeded", err.Error())
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"429", &APIError{Status: http.StatusTooManyRequests}, true},
		{"529 overloaded", &APIError{Status: 529}, true},
		{"500", &APIError{Status: http.StatusInternalServerError}, false},
		{"400", &APIError{Status: http.StatusBadRequest}, false},
		{"wrapped 429", eris.Wrap(&APIError{Status: 429}, "normalize note"), true},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestIsServerFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"500", &APIError{Status: http.StatusInternalServerError}, true},
		{"503", &APIError{Status: http.StatusServiceUnavailable}, true},
		{"529 counts as 5xx too", &APIError{Status: 529}, true},
		{"408 request timeout", &APIError{Status: http.StatusRequestTimeout}, true},
		{"429", &APIError{Status: http.StatusTooManyRequests}, false},
		{"401", &APIError{Status: http.StatusUnauthorized}, false},
		{"wrapped 503", fmt.Errorf("call failed: %w", &APIError{Status: 503}), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsServerFault(tt.err))
		})
	}
}

func TestWrapAPIError_PassthroughNonSDK(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	wrapped := wrapAPIError(base, "anthropic: create message")

	assert.Contains(t, wrapped.Error(), "anthropic: create message")
	assert.Contains(t, wrapped.Error(), "connection refused")

	// No APIError in the chain for non-API failures.
	var apiErr *APIError
	assert.False(t, errors.As(wrapped, &apiErr))
}
