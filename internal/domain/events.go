package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchScheduled      EventType = "SearchScheduled"
	EventSearchDispatched     EventType = "SearchDispatched"
	EventSearchCompleted      EventType = "SearchCompleted"
	EventSearchFailed         EventType = "SearchFailed"
	EventSearchCleared        EventType = "SearchCleared"
	EventStaleResponseDropped EventType = "StaleResponseDropped"
	EventCursorMoved          EventType = "CursorMoved"
	EventSelectionResolved    EventType = "SelectionResolved"
	EventRecentsLoaded        EventType = "RecentsLoaded"
	EventRecentsPersistFailed EventType = "RecentsPersistFailed"
	EventOverlayClosed        EventType = "OverlayClosed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchScheduledEvent is emitted when the debounce timer is (re)started
type SearchScheduledEvent struct {
	Query string
}

func (e SearchScheduledEvent) Type() EventType { return EventSearchScheduled }

// SearchDispatchedEvent is emitted when a request is sent to the provider
type SearchDispatchedEvent struct {
	Seq   uint64
	Query string
}

func (e SearchDispatchedEvent) Type() EventType { return EventSearchDispatched }

// SearchCompletedEvent is emitted when a response is applied
type SearchCompletedEvent struct {
	Seq   uint64
	Query string
	Count int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the latest request fails
type SearchFailedEvent struct {
	Seq   uint64
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when results are cleared for a short query
type SearchClearedEvent struct {
	Query string
}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// StaleResponseDroppedEvent is emitted when a superseded response arrives
type StaleResponseDroppedEvent struct {
	Seq    uint64
	Latest uint64
}

func (e StaleResponseDroppedEvent) Type() EventType { return EventStaleResponseDropped }

// CursorMovedEvent is emitted when the navigation cursor changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// SelectionResolvedEvent is emitted after a selection is recorded and routed
type SelectionResolvedEvent struct {
	Selection  RecentSelection
	Target     RouteTarget
	FromRecent bool
}

func (e SelectionResolvedEvent) Type() EventType { return EventSelectionResolved }

// RecentsLoadedEvent is emitted once the recency store has been read
type RecentsLoadedEvent struct {
	Count int
	Err   error // non-nil when the stored data was unreadable
}

func (e RecentsLoadedEvent) Type() EventType { return EventRecentsLoaded }

// RecentsPersistFailedEvent is emitted when writing recents fails
type RecentsPersistFailedEvent struct {
	Err error
}

func (e RecentsPersistFailedEvent) Type() EventType { return EventRecentsPersistFailed }

// OverlayClosedEvent is emitted when the overlay is dismissed
type OverlayClosedEvent struct {
	Selected bool
}

func (e OverlayClosedEvent) Type() EventType { return EventOverlayClosed }
