// Package collection provides list implementations built to be decorated.
package collection

import "errors"

//go:generate go run github.com/a-peyrard/godeco/cmd/godeco-gen

var (
	ErrOutOfRange       = errors.New("index out of range")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// List is an ordered sequence of values.
//
// @proxy
type List interface {
	Add(value any) error
	AddAll(values ...any) error
	Get(index int) (any, error)
	Set(index int, value any) (any, error)
	Remove(value any) bool
	RemoveIf(predicate func(any) bool) bool
	Contains(value any) bool
	Len() int
	Values() []any
}

// TrackedList is a List able to tell whether it was modified.
//
// @proxy
type TrackedList interface {
	List
	IsDirty() bool
}
