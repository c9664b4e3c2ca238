package extract

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ArturoR1986/roof-report/pkg/anthropic"
)

// FailureKind classifies why a normalization attempt produced no record.
type FailureKind string

const (
	// FailurePrecondition means the request was rejected before any API
	// call: blank note text or no configured client.
	FailurePrecondition FailureKind = "precondition"

	// FailureRateLimited means the API shed the request (429 or 529).
	FailureRateLimited FailureKind = "rate_limited"

	// FailureService covers server faults and timeouts on the API side.
	FailureService FailureKind = "service"

	// FailureBadPayload means the API answered but the text could not be
	// recovered as a record.
	FailureBadPayload FailureKind = "bad_payload"

	// FailureUnexpected is everything else.
	FailureUnexpected FailureKind = "unexpected"
)

// Failure carries a classification plus a message suitable for direct
// display to the technician.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// classifyCallFailure maps a CreateMessage error onto the failure taxonomy.
// Rate limiting is checked before server faults because a 529 satisfies
// both predicates.
func classifyCallFailure(err error) *Failure {
	switch {
	case anthropic.IsRateLimited(err):
		return &Failure{
			Kind:    FailureRateLimited,
			Message: "AI service is temporarily unavailable (rate limited). Use manual entry or retry later.",
		}
	case anthropic.IsServerFault(err):
		return &Failure{
			Kind:    FailureService,
			Message: "AI service error: " + err.Error(),
		}
	case isTimeout(err):
		return &Failure{
			Kind:    FailureService,
			Message: "AI service error: " + err.Error(),
		}
	default:
		return &Failure{
			Kind:    FailureUnexpected,
			Message: "unexpected normalization error: " + err.Error(),
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
