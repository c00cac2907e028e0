package dispatch

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/rs/zerolog"
)

// LoggingBehavior is the outermost stage of the chain. It records the start
// of every request, then the outcome and elapsed duration once the rest of
// the chain returns — including failures short-circuited by authorization or
// validation, which never reach the handler. It never alters the result and
// never suppresses a failure.
type LoggingBehavior struct {
	log *logger.Logger
}

// NewLoggingBehavior constructs the logging stage. The behavior prefers the
// request-scoped logger attached to the context by the HTTP boundary (it
// carries the trace identifier); log is the fallback for contexts without
// one.
func NewLoggingBehavior(log *logger.Logger) *LoggingBehavior {
	if log == nil {
		log = logger.Nop()
	}

	return &LoggingBehavior{log: log}
}

// Wrap implements the Behavior interface.
func (b *LoggingBehavior) Wrap(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, request Request) (any, error) {
		log := logger.FromContext(ctx)
		if log.GetLevel() == zerolog.Disabled {
			log = b.log
		}

		start := time.Now()

		log.Debug().
			Str("request", request.Name()).
			Msg("request accepted")

		result, err := next.Handle(ctx, request)

		duration := time.Since(start)

		if err != nil {
			log.Warn().
				Str("request", request.Name()).
				Str("outcome", "failure").
				Dur("duration", duration).
				Err(err).
				Send()

			return nil, err
		}

		log.Info().
			Str("request", request.Name()).
			Str("outcome", "success").
			Dur("duration", duration).
			Send()

		return result, nil
	})
}
