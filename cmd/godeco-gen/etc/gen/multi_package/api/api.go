package api

import (
	"time"

	apptime "example.com/app/time"
)

// Clock tells the time.
//
// @proxy
type Clock interface {
	Now() time.Time
	Zone() apptime.Zone
}

// secret cannot be proxied outside of this package.
//
// @proxy
type secret interface {
	Reveal() string
}
