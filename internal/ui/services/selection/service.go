package selection

import (
	"fmt"
	"log"
	"time"

	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
)

// Service resolves a chosen entry into a recorded selection and a route
type Service struct {
	recorder  Recorder
	navigator Navigator
	bus       eventbus.EventBus
	now       Clock
}

// NewService creates a new selection service
func NewService(recorder Recorder, navigator Navigator, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	return &Service{
		recorder:  recorder,
		navigator: navigator,
		bus:       bus,
		now:       time.Now,
	}
}

// SetClock replaces the time source
func (s *Service) SetClock(now Clock) {
	s.now = now
}

// Resolve records a live result under the current query and navigates to it
func (s *Service) Resolve(entry domain.FlatEntry, query string) (Result, error) {
	if !entry.Category.Valid() {
		return Result{}, fmt.Errorf("unknown category %q", entry.Category)
	}
	if entry.Item.ID == "" {
		return Result{}, fmt.Errorf("%s result has no id", entry.Category)
	}

	sel := domain.RecentSelection{
		Query:     query,
		Category:  entry.Category,
		ID:        entry.Item.ID,
		Name:      entry.Item.Name,
		Timestamp: s.now().UTC(),
	}
	return s.complete(sel, false), nil
}

// ResolveRecent re-selects a stored entry. Its category, id and name are
// reused as they are and no search is issued.
func (s *Service) ResolveRecent(rec domain.RecentSelection) (Result, error) {
	if !rec.Category.Valid() {
		return Result{}, fmt.Errorf("unknown category %q", rec.Category)
	}
	if rec.ID == "" {
		return Result{}, fmt.Errorf("recent %s entry has no id", rec.Category)
	}

	rec.Timestamp = s.now().UTC()
	return s.complete(rec, true), nil
}

func (s *Service) complete(sel domain.RecentSelection, fromRecent bool) Result {
	res := Result{
		Selection: sel,
		Target:    domain.RouteTarget{Category: sel.Category, ID: sel.ID},
	}

	if s.recorder != nil {
		if err := s.recorder.Record(sel); err != nil {
			// Navigation still goes ahead; losing a recent entry is not fatal.
			log.Printf("Failed to record selection %s: %v", res.Target, err)
			res.PersistErr = err
		}
	}

	if s.navigator != nil {
		s.navigator.Navigate(res.Target)
	}

	s.bus.Publish(domain.SelectionResolvedEvent{
		Selection:  sel,
		Target:     res.Target,
		FromRecent: fromRecent,
	})
	return res
}
