package dispatch

import (
	"context"
)

// Violation is one failed input rule: which field broke which rule.
type Violation struct {
	Field  string
	Reason string
}

// Validator is one set of input rules bound to a request shape. Validate
// returns every violation it finds — an empty slice means the request
// passed. Validators report findings, they do not fail: infrastructure-free
// structural and business checks only.
type Validator interface {
	// RequestName declares the request shape this validator checks.
	RequestName() string

	// Validate evaluates all rules and returns all violations found.
	Validate(ctx context.Context, request Request) []Violation
}

// ValidatorSource resolves the validators bound to a request shape.
// Implementations are built once at startup and read-only afterwards.
type ValidatorSource interface {
	For(requestName string) []Validator
}

// ValidationBehavior is the third stage of the chain. Unlike authorization,
// which stops at the first denial, validation evaluates every bound
// validator and every rule before deciding, then short-circuits with a
// single [ValidationError] enumerating all violations found. Clients see
// the complete list, not just the first problem.
type ValidationBehavior struct {
	validators ValidatorSource
}

// NewValidationBehavior constructs the validation stage. A nil source leaves
// every request unchecked.
func NewValidationBehavior(validators ValidatorSource) *ValidationBehavior {
	return &ValidationBehavior{validators: validators}
}

// Wrap implements the Behavior interface.
func (b *ValidationBehavior) Wrap(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, request Request) (any, error) {
		if b.validators == nil {
			return next.Handle(ctx, request)
		}

		var violations []Violation
		for _, validator := range b.validators.For(request.Name()) {
			violations = append(violations, validator.Validate(ctx, request)...)
		}

		if len(violations) > 0 {
			return nil, &ValidationError{Violations: violations}
		}

		return next.Handle(ctx, request)
	})
}
