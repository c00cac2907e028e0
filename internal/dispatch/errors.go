package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy of the request pipeline. Every error surfaced by a
// behavior or a handler is expected to wrap exactly one of these sentinels
// (or none, in which case the classifier's fallback row applies). Callers
// should use [errors.Is] to match against these values.
var (
	// ErrNotImplemented is returned by handlers for operations that are
	// declared in the API surface but intentionally not built yet.
	ErrNotImplemented = errors.New("feature is not implemented")

	// ErrAuthenticationRequired is returned by the authorization stage when
	// a request shape has at least one bound authorizer but the request
	// context carries no caller identity.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAccessDenied is returned by the authorization stage when an
	// authorizer denies the authenticated caller. The wrapping error text
	// carries the denial reason.
	ErrAccessDenied = errors.New("access denied")

	// ErrInputInvalid marks request payloads that failed validation.
	// It is surfaced wrapped inside a [ValidationError], which enumerates
	// every violated rule.
	ErrInputInvalid = errors.New("input is invalid")

	// ErrUnsupportedOperation is returned by the dispatcher when no handler
	// is registered for the request shape, and by the typed adapters on a
	// shape/handler mismatch. It signals a programming fault rather than a
	// client condition: the boundary policy rethrows it instead of mapping
	// it to a status code.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrDependencyUnavailable marks failures of downstream collaborators
	// (database, search indexer) that the caller may retry later.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError aggregates every violation found by the validation stage
// for a single request. The stage always evaluates all bound validators and
// all their rules before failing, so Violations is the complete list, never
// just the first finding.
//
// ValidationError unwraps to [ErrInputInvalid], so errors.Is(err,
// ErrInputInvalid) matches and the classifier's input-invalid row applies.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface. The text lists every violation.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}

	return fmt.Sprintf("input is invalid: %s", strings.Join(parts, "; "))
}

// Unwrap reports the taxonomy category of the error.
func (e *ValidationError) Unwrap() error {
	return ErrInputInvalid
}
