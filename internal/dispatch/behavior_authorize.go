package dispatch

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// Decision is the verdict of a single authorizer for a single request.
type Decision struct {
	// Allowed reports whether the authorizer permits the request.
	Allowed bool

	// Reason explains a denial. Empty when Allowed is true.
	Reason string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision carrying the reason shown to the caller.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorizer is one capability check bound to a request shape. Authorize
// inspects the request and the authenticated caller and decides; an error
// return means the check itself could not run (infrastructure failure) and
// propagates as-is rather than turning into a denial.
type Authorizer interface {
	// RequestName declares the request shape this authorizer guards.
	RequestName() string

	// Authorize decides whether identity may run the request.
	Authorize(ctx context.Context, request Request, identity models.Identity) (Decision, error)
}

// AuthorizerSource resolves the authorizers bound to a request shape.
// Implementations are built once at startup and read-only afterwards.
type AuthorizerSource interface {
	For(requestName string) []Authorizer
}

// AuthorizationBehavior is the second stage of the chain. A request shape
// with zero bound authorizers passes through untouched. With one or more
// bound, every authorizer must allow: the first denial short-circuits the
// chain with [ErrAccessDenied] and the denial reason, and neither the
// remaining authorizers nor any later stage runs. An anonymous request
// against a guarded shape short-circuits with [ErrAuthenticationRequired]
// before any authorizer is consulted.
type AuthorizationBehavior struct {
	authorizers AuthorizerSource
}

// NewAuthorizationBehavior constructs the authorization stage. A nil source
// leaves every request unguarded.
func NewAuthorizationBehavior(authorizers AuthorizerSource) *AuthorizationBehavior {
	return &AuthorizationBehavior{authorizers: authorizers}
}

// Wrap implements the Behavior interface.
func (b *AuthorizationBehavior) Wrap(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, request Request) (any, error) {
		if b.authorizers == nil {
			return next.Handle(ctx, request)
		}

		bound := b.authorizers.For(request.Name())
		if len(bound) == 0 {
			return next.Handle(ctx, request)
		}

		identity, ok := utils.GetIdentityFromContext(ctx)
		if !ok {
			return nil, fmt.Errorf("%w: request %q is guarded", ErrAuthenticationRequired, request.Name())
		}

		for _, authorizer := range bound {
			decision, err := authorizer.Authorize(ctx, request, identity)
			if err != nil {
				return nil, fmt.Errorf("error authorizing request %q: %w", request.Name(), err)
			}
			if !decision.Allowed {
				return nil, fmt.Errorf("%w: %s", ErrAccessDenied, decision.Reason)
			}
		}

		return next.Handle(ctx, request)
	})
}
