// Package intercept provides handlers to decorate instances with godeco.Chain.WithHandler.
package intercept

import (
	"time"

	"github.com/a-peyrard/godeco"
	"github.com/a-peyrard/godeco/set"
	"github.com/rs/zerolog"
)

type (
	// Interceptor runs around one operation. Calling next continues with the following
	// interceptors, and finally the target.
	Interceptor func(target any, op godeco.Operation, args []any, next Next) ([]any, error)

	// Next continues the invocation, possibly with other arguments.
	Next func(args []any) ([]any, error)
)

// Forwarding returns a handler calling the target, every call going through unchanged.
func Forwarding() godeco.Handler {
	return godeco.HandlerFunc(godeco.Forward)
}

// Chain builds a handler running the interceptors in order, the last one reaching the target.
func Chain(interceptors ...Interceptor) godeco.Handler {
	return godeco.HandlerFunc(func(target any, op godeco.Operation, args []any) ([]any, error) {
		return invoke(interceptors, target, op, args)
	})
}

func invoke(interceptors []Interceptor, target any, op godeco.Operation, args []any) ([]any, error) {
	if len(interceptors) == 0 {
		return godeco.Forward(target, op, args)
	}
	return interceptors[0](target, op, args, func(args []any) ([]any, error) {
		return invoke(interceptors[1:], target, op, args)
	})
}

// OnOperations applies the interceptor to the named operations only.
func OnOperations(interceptor Interceptor, names ...string) Interceptor {
	selected := set.NewWithValues(names...)
	return func(target any, op godeco.Operation, args []any, next Next) ([]any, error) {
		if !selected.Contains(op.Name) {
			return next(args)
		}
		return interceptor(target, op, args, next)
	}
}

// Logging logs every operation at debug level, with its duration.
func Logging(logger zerolog.Logger) Interceptor {
	return func(target any, op godeco.Operation, args []any, next Next) ([]any, error) {
		start := time.Now()
		results, err := next(args)
		event := logger.Debug()
		if err != nil {
			event = logger.Warn().Err(err)
		}
		event.
			Stringer("operation", op).
			Type("target", target).
			Dur("duration", time.Since(start)).
			Msg("Operation invoked")
		return results, err
	}
}
