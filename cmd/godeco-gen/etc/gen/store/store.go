package store

import (
	"fmt"
	"io"
)

//go:generate go run github.com/a-peyrard/godeco/cmd/godeco-gen

// Store keeps integer values by key.
//
// @proxy
type Store interface {
	Put(key string, value int) error
	Get(key string) (int, bool)
	Dump(w io.Writer, keys ...string) error
	Reset()
}

// Cache is not annotated, no proxy is generated for it.
type Cache interface {
	Store
	Hits() int
}

// CachedStore remembers the last values read from its delegate.
type CachedStore struct {
	Store
	size   int
	values map[string]int
}

// NewCachedStore remembers at most size values.
//
// @constructor
func NewCachedStore(size int, delegate Store) *CachedStore {
	return &CachedStore{Store: delegate, size: size, values: make(map[string]int, size)}
}

func (s *CachedStore) Get(key string) (int, bool) {
	if value, found := s.values[key]; found {
		return value, true
	}
	value, found := s.Store.Get(key)
	if found && len(s.values) < s.size {
		s.values[key] = value
	}
	return value, found
}

func (s *CachedStore) Dump(w io.Writer, keys ...string) error {
	if _, err := fmt.Fprintf(w, "cached: %d\n", len(s.values)); err != nil {
		return err
	}
	return s.Store.Dump(w, keys...)
}
