package selection

import (
	"time"

	"crmsearch/internal/domain"
)

// Recorder stores a chosen selection
type Recorder interface {
	Record(sel domain.RecentSelection) error
}

// Navigator performs the navigation side effect for a route target
type Navigator interface {
	Navigate(target domain.RouteTarget)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(target domain.RouteTarget)

func (f NavigatorFunc) Navigate(target domain.RouteTarget) { f(target) }

// Result describes a resolved selection
type Result struct {
	Selection domain.RecentSelection
	Target    domain.RouteTarget
	// PersistErr is set when recording failed; navigation still happened
	PersistErr error
}

// Clock returns the current time
type Clock func() time.Time
