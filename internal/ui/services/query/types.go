package query

import (
	"time"

	"crmsearch/internal/domain"
)

const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultMinLength = 2
)

// State holds the query session state
type State struct {
	Query      string
	Loading    bool
	Seq        uint64 // last dispatched (or invalidated) request
	AppliedSeq uint64 // last response applied to results
	generation uint64 // identifies the pending debounce timer
}

// Response is a settled provider call tagged with its dispatch sequence
type Response struct {
	Seq   uint64
	Query string
	Set   *domain.ResultSet
	Err   error
}

// Timer is a pending scheduled call
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster hands fn to the event loop that owns the session state.
// Timer callbacks and provider responses never touch state directly.
type Poster func(fn func())

// RealScheduler schedules with the time package
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Options configures the service
type Options struct {
	Debounce  time.Duration
	MinLength int
	Scheduler Scheduler
	Post      Poster
}
