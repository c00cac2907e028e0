// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// Request is one inbound command or query. Name returns the request's shape
// identity, used for three independent lookups: which handler runs it, which
// authorizers guard it, and which validators check it. Requests are
// immutable values; the chain passes them through without modification.
type Request interface {
	Name() string
}

// Handler is the terminal stage of the pipeline: it produces the result for
// a request or fails. Behaviors also satisfy Handler once composed, so the
// whole chain is itself a Handler.
type Handler interface {
	Handle(ctx context.Context, request Request) (any, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, request Request) (any, error)

// Handle calls f(ctx, request).
func (f HandlerFunc) Handle(ctx context.Context, request Request) (any, error) {
	return f(ctx, request)
}

// Behavior is a composable decorator around request handling. Wrap receives
// the next stage (another behavior or the terminal handler) and returns the
// decorated stage. A behavior may pass the request through, short-circuit by
// failing without calling next, or observe the outcome after next returns
// without altering it.
//
// Behaviors are stateless and registered once at startup; one instance
// serves many concurrent requests.
type Behavior interface {
	Wrap(next Handler) Handler
}

// Session is a per-request scoped resource handle, typically a pinned
// database connection. It is opened by the dispatcher before the chain runs
// and closed unconditionally when the chain returns, whatever the outcome.
type Session interface {
	Close() error
}

// SessionFactory opens the scoped resource for one request. The returned
// context is passed down the chain so handlers can reach the session;
// the returned Session is closed by the dispatcher on every exit path.
type SessionFactory interface {
	Open(ctx context.Context) (context.Context, Session, error)
}

// Dispatcher routes requests to their registered handlers through the
// behavior chain. Chains are composed once per request shape at
// registration time; after startup the dispatcher is read-only and safe
// for unsynchronized concurrent use.
type Dispatcher struct {
	behaviors []Behavior
	sessions  SessionFactory
	chains    map[string]Handler
	log       *logger.Logger
}

// NewDispatcher constructs a Dispatcher that decorates every registered
// handler with the given behaviors, outermost first. A nil sessions factory
// disables scoped-resource management (useful in tests); a nil log falls
// back to a no-op logger.
func NewDispatcher(sessions SessionFactory, behaviors []Behavior, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}

	return &Dispatcher{
		behaviors: behaviors,
		sessions:  sessions,
		chains:    make(map[string]Handler),
		log:       log,
	}
}

// Register binds a handler to a request shape and composes its behavior
// chain. Registration happens at startup only; registering the same shape
// twice is a wiring mistake and fails.
func (d *Dispatcher) Register(name string, handler Handler) error {
	if name == "" {
		return errors.New("empty request name")
	}
	if handler == nil {
		return fmt.Errorf("nil handler for request %q", name)
	}
	if _, exists := d.chains[name]; exists {
		return fmt.Errorf("handler already registered for request %q", name)
	}

	// Compose back to front so behaviors[0] ends up outermost.
	chain := handler
	for i := len(d.behaviors) - 1; i >= 0; i-- {
		chain = d.behaviors[i].Wrap(chain)
	}
	d.chains[name] = chain

	d.log.Debug().Str("request", name).Msg("handler registered")

	return nil
}

// Dispatch resolves the chain for the request's shape and runs it end to
// end. The scoped session is opened before the first behavior and closed
// after the last one returns, on success, failure, and short-circuit alike.
//
// A request shape with no registered handler is a programming fault, not a
// client condition: Dispatch fails with [ErrUnsupportedOperation].
func (d *Dispatcher) Dispatch(ctx context.Context, request Request) (any, error) {
	chain, ok := d.chains[request.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: no handler registered for request %q", ErrUnsupportedOperation, request.Name())
	}

	if d.sessions != nil {
		sessionCtx, session, err := d.sessions.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("error opening session for request %q: %w", request.Name(), err)
		}
		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				d.log.Error().Err(closeErr).Str("request", request.Name()).Msg("error closing request session")
			}
		}()
		ctx = sessionCtx
	}

	return chain.Handle(ctx, request)
}

// DefaultBehaviors returns the standard chain in its fixed order: logging
// outermost, then authorization, then validation, then the handler.
func DefaultBehaviors(log *logger.Logger, authorizers AuthorizerSource, validators ValidatorSource) []Behavior {
	return []Behavior{
		NewLoggingBehavior(log),
		NewAuthorizationBehavior(authorizers),
		NewValidationBehavior(validators),
	}
}

// NewHandlerFunc adapts a typed handler function to the untyped Handler
// interface. The adapter asserts the envelope back to its concrete request
// type; a mismatch means registration wired the wrong handler to the shape
// and surfaces as [ErrUnsupportedOperation].
func NewHandlerFunc[T Request, R any](handle func(ctx context.Context, request T) (R, error)) Handler {
	return HandlerFunc(func(ctx context.Context, request Request) (any, error) {
		typed, ok := request.(T)
		if !ok {
			return nil, fmt.Errorf("%w: handler for %T received %T", ErrUnsupportedOperation, *new(T), request)
		}

		return handle(ctx, typed)
	})
}

// Send dispatches the request and asserts the successful result to R.
// It is the typed front door callers use instead of Dispatch directly.
func Send[R any](ctx context.Context, d *Dispatcher, request Request) (R, error) {
	var zero R

	result, err := d.Dispatch(ctx, request)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("%w: request %q produced %T, caller expects %T", ErrUnsupportedOperation, request.Name(), result, zero)
	}

	return typed, nil
}
