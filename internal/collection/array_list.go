package collection

import (
	"fmt"
	"reflect"
)

// ArrayList is a List backed by a slice. It is not safe for concurrent use.
type ArrayList struct {
	values []any
}

func NewArrayList(values ...any) *ArrayList {
	return &ArrayList{values: append([]any(nil), values...)}
}

func (l *ArrayList) Add(value any) error {
	l.values = append(l.values, value)
	return nil
}

func (l *ArrayList) AddAll(values ...any) error {
	l.values = append(l.values, values...)
	return nil
}

func (l *ArrayList) Get(index int) (any, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	return l.values[index], nil
}

func (l *ArrayList) Set(index int, value any) (any, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	previous := l.values[index]
	l.values[index] = value
	return previous, nil
}

// Remove removes the first value equal to value.
func (l *ArrayList) Remove(value any) bool {
	for i, v := range l.values {
		if equal(v, value) {
			l.values = append(l.values[:i], l.values[i+1:]...)
			return true
		}
	}
	return false
}

func (l *ArrayList) RemoveIf(predicate func(any) bool) bool {
	kept := l.values[:0]
	for _, v := range l.values {
		if !predicate(v) {
			kept = append(kept, v)
		}
	}
	removed := len(kept) != len(l.values)
	clear(l.values[len(kept):])
	l.values = kept
	return removed
}

func (l *ArrayList) Contains(value any) bool {
	for _, v := range l.values {
		if equal(v, value) {
			return true
		}
	}
	return false
}

func (l *ArrayList) Len() int {
	return len(l.values)
}

// Values returns a copy of the values.
func (l *ArrayList) Values() []any {
	return append([]any(nil), l.values...)
}

func (l *ArrayList) check(index int) error {
	if index < 0 || index >= len(l.values) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(l.values))
	}
	return nil
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
