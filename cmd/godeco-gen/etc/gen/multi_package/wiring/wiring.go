package wiring

import (
	"example.com/app/api"
)

//go:generate go run github.com/a-peyrard/godeco/cmd/godeco-gen

// Ticker counts the ticks of a clock.
type Ticker struct {
	api.Clock
	ticks int
}

// NewTicker starts counting.
//
// @constructor
func NewTicker(c api.Clock) *Ticker {
	return &Ticker{Clock: c}
}

// NewClock cannot be registered, it does not build a concrete type.
//
// @constructor
func NewClock(c api.Clock) api.Clock {
	return c
}
