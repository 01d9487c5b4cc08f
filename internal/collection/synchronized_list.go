package collection

import "sync"

// SynchronizedList serializes the calls made to its delegate.
type SynchronizedList struct {
	mu       sync.Mutex
	delegate List
}

// NewSynchronizedList wraps delegate.
//
// @constructor
func NewSynchronizedList(delegate List) *SynchronizedList {
	return &SynchronizedList{delegate: delegate}
}

func (l *SynchronizedList) Add(value any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Add(value)
}

func (l *SynchronizedList) AddAll(values ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.AddAll(values...)
}

func (l *SynchronizedList) Get(index int) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Get(index)
}

func (l *SynchronizedList) Set(index int, value any) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Set(index, value)
}

func (l *SynchronizedList) Remove(value any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Remove(value)
}

func (l *SynchronizedList) RemoveIf(predicate func(any) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.RemoveIf(predicate)
}

func (l *SynchronizedList) Contains(value any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Contains(value)
}

func (l *SynchronizedList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Len()
}

func (l *SynchronizedList) Values() []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate.Values()
}

// Delegate returns the wrapped list.
func (l *SynchronizedList) Delegate() any {
	return l.delegate
}
