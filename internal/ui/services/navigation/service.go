package navigation

import (
	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
)

// Service is a linear cursor over the visible entries. It knows nothing
// about categories; moving past the last item of one category lands on the
// first item of the next.
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	return &Service{
		state: &State{
			Cursor:         NoSelection,
			ViewportHeight: 10, // Default, will be updated
		},
		bus: bus,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// Length returns the number of entries the cursor runs over
func (s *Service) Length() int {
	return s.state.Length
}

// HasSelection reports whether an entry is highlighted
func (s *Service) HasSelection() bool {
	return s.state.Cursor >= 0
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight sets how many entries fit on screen
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Reset points the cursor at nothing over a list of the given length.
// Called whenever the visible list changes.
func (s *Service) Reset(length int) {
	if length < 0 {
		length = 0
	}
	oldCursor := s.state.Cursor
	s.state.Length = length
	s.state.Cursor = NoSelection
	s.state.ViewportOffset = 0
	s.publishMove(oldCursor)
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.moveUp()
	case DirectionDown:
		s.moveDown()
	case DirectionHome:
		if s.state.Length > 0 {
			s.state.Cursor = 0
		}
	case DirectionEnd:
		s.state.Cursor = s.state.Length - 1
	}

	s.ensureVisible()
	s.publishMove(oldCursor)
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	oldCursor := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
	s.publishMove(oldCursor)
}

func (s *Service) moveUp() {
	if s.state.Cursor > NoSelection {
		s.state.Cursor--
	}
}

func (s *Service) moveDown() {
	if s.state.Length == 0 {
		return
	}
	if s.state.Cursor < s.state.Length-1 {
		s.state.Cursor++
	}
}

func (s *Service) clampIndex(index int) int {
	if index < NoSelection {
		return NoSelection
	}
	if index > s.state.Length-1 {
		return s.state.Length - 1
	}
	return index
}

func (s *Service) ensureVisible() {
	cursor := s.state.Cursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = cursor
	} else if cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = cursor - s.state.ViewportHeight + 1
	}
}

func (s *Service) publishMove(oldCursor int) {
	if oldCursor != s.state.Cursor {
		s.bus.Publish(domain.CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}
