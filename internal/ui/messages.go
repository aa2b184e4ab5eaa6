package ui

import (
	"time"

	"crmsearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// TaskMsg carries a callback that must run on the event loop.
// Debounce timers and provider responses arrive this way.
type TaskMsg struct {
	Fn func()
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
