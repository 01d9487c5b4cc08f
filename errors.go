package godeco

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Kind classifies the failures raised while building a decoration.
type Kind int

const (
	// GenerationFailure means no decorated shape could be produced for the requested type.
	GenerationFailure Kind = iota + 1
	// InstantiationFailure means no constructor matched, or the construction itself failed.
	InstantiationFailure
	// InjectionFailure means a delegate field was found but could not be set.
	InjectionFailure
)

var (
	ErrGeneration    = errors.New("generation failure")
	ErrInstantiation = errors.New("instantiation failure")
	ErrInjection     = errors.New("injection failure")
)

func (k Kind) String() string {
	switch k {
	case GenerationFailure:
		return "generation failure"
	case InstantiationFailure:
		return "instantiation failure"
	case InjectionFailure:
		return "injection failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case GenerationFailure:
		return ErrGeneration
	case InstantiationFailure:
		return ErrInstantiation
	case InjectionFailure:
		return ErrInjection
	default:
		return nil
	}
}

// Error is the single error type returned by the decoration chain.
//
// Errors raised by the decorated instances once in use are never wrapped into an Error,
// they reach the caller unchanged.
type Error struct {
	Kind Kind
	// Type is the requested type, when known.
	Type reflect.Type
	// Attempted lists the constructor signatures tried by the matcher.
	Attempted []string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Type != nil {
		b.WriteString(" for ")
		b.WriteString(e.Type.String())
	}
	if len(e.Attempted) > 0 {
		b.WriteString(", attempted signatures: ")
		b.WriteString(strings.Join(e.Attempted, ", "))
	}
	if e.Err != nil {
		b.WriteString(":\n\t")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, so errors.Is(err, ErrInstantiation) works.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind Kind, typ reflect.Type, err error) *Error {
	return &Error{Kind: kind, Type: typ, Err: err}
}

func errorf(kind Kind, typ reflect.Type, format string, args ...any) *Error {
	return newError(kind, typ, fmt.Errorf(format, args...))
}

// normalize turns any error into an *Error, keeping the kind of errors that already are one.
func normalize(kind Kind, typ reflect.Type, err error) error {
	if err == nil {
		return nil
	}
	var decorationErr *Error
	if errors.As(err, &decorationErr) {
		return err
	}
	return newError(kind, typ, err)
}
