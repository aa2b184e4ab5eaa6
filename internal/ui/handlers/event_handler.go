package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
)

// StatusTTL is how long a status message stays on screen
const StatusTTL = 3 * time.Second

// ClearStatusMsg asks the model to clear its status line
type ClearStatusMsg struct{}

// EventHandler turns domain events forwarded from the bus into status
// messages for the closed screen. Search failures are never shown.
type EventHandler struct {
	setStatus func(string)
}

// NewEventHandler creates a new event handler
func NewEventHandler(setStatus func(string)) *EventHandler {
	return &EventHandler{setStatus: setStatus}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	var msg string

	switch e := event.(type) {
	case domain.RecentsPersistFailedEvent:
		msg = fmt.Sprintf("Could not save recent searches: %v", e.Err)
	}

	if msg == "" {
		return nil
	}
	h.setStatus(msg)
	return tea.Tick(StatusTTL, func(t time.Time) tea.Msg { return ClearStatusMsg{} })
}
