package anthropic

import (
	"errors"
	"fmt"
	"net/http"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/rotisserie/eris"
)

// statusOverloaded is Anthropic's load-shed status; it behaves like a 429.
const statusOverloaded = 529

// APIError is the boundary representation of an Anthropic API failure.
// Callers classify on Status without importing SDK types.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic api error (status %d): %s", e.Status, e.Message)
}

// wrapAPIError converts an SDK failure into an *APIError wrapped with
// context. Non-API errors (network, context) pass through untranslated.
func wrapAPIError(err error, msg string) error {
	var apierr *sdk.Error
	if errors.As(err, &apierr) {
		return eris.Wrap(&APIError{
			Status:  apierr.StatusCode,
			Message: apierr.Error(),
		}, msg)
	}
	return eris.Wrap(err, msg)
}

// IsRateLimited reports whether err is a 429 or a 529 overload response.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusTooManyRequests || apiErr.Status == statusOverloaded
}

// IsServerFault reports whether err is a 5xx or request-timeout response.
func IsServerFault(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= http.StatusInternalServerError ||
		apiErr.Status == http.StatusRequestTimeout
}
