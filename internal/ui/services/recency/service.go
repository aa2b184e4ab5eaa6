// Package recency keeps the bounded list of recently selected results.
//
// The list is loaded once when the service is created and rewritten to
// storage on every Record. The service is the only writer of its key.
package recency

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
	"crmsearch/internal/storage"
)

// Service owns the recent selections
type Service struct {
	store   storage.Store
	key     string
	limit   int
	bus     eventbus.EventBus
	entries []domain.RecentSelection
	loaded  LoadResult
}

// NewService creates the service and loads the persisted list.
// A load failure leaves the list empty; see LoadResult.
func NewService(store storage.Store, key string, limit int, bus eventbus.EventBus) *Service {
	if key == "" {
		key = DefaultKey
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if bus == nil {
		bus = eventbus.Nop{}
	}

	s := &Service{
		store: store,
		key:   key,
		limit: limit,
		bus:   bus,
	}
	s.loaded = s.load()
	s.entries = s.loaded.Entries

	if s.loaded.Err != nil {
		log.Printf("Recent searches unavailable, starting empty: %v", s.loaded.Err)
	}
	s.bus.Publish(domain.RecentsLoadedEvent{Count: len(s.entries), Err: s.loaded.Err})
	return s
}

// LoadResult returns the outcome of the startup load
func (s *Service) LoadResult() LoadResult {
	return s.loaded
}

// List returns entries newest first
func (s *Service) List() []domain.RecentSelection {
	out := make([]domain.RecentSelection, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Service) Len() int {
	return len(s.entries)
}

// Record moves sel to the front, dropping any older entry with the same id,
// and persists the list. The in-memory list is updated even when persisting
// fails.
func (s *Service) Record(sel domain.RecentSelection) error {
	if sel.ID == "" {
		return fmt.Errorf("recency: selection has no id")
	}
	s.entries = Prepend(s.entries, sel, s.limit)
	return s.persist()
}

// Clear removes every entry
func (s *Service) Clear() error {
	s.entries = nil
	if err := s.store.Delete(s.key); err != nil {
		s.bus.Publish(domain.RecentsPersistFailedEvent{Err: err})
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return nil
}

// Prepend returns a new list with sel first, without other entries sharing
// its id, truncated to limit.
func Prepend(list []domain.RecentSelection, sel domain.RecentSelection, limit int) []domain.RecentSelection {
	out := make([]domain.RecentSelection, 0, min(len(list)+1, limit))
	out = append(out, sel)
	for _, e := range list {
		if len(out) >= limit {
			break
		}
		if e.ID == sel.ID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Service) persist() error {
	data, err := json.Marshal(s.entries)
	if err == nil {
		err = s.store.Set(s.key, data)
	}
	if err != nil {
		log.Printf("Failed to persist recent searches: %v", err)
		s.bus.Publish(domain.RecentsPersistFailedEvent{Err: err})
		return fmt.Errorf("failed to persist recent searches: %w", err)
	}
	return nil
}

func (s *Service) load() LoadResult {
	data, err := s.store.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return LoadResult{}
	}
	if err != nil {
		return LoadResult{Err: fmt.Errorf("read recent searches: %w", err)}
	}
	entries, err := decode(data)
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Entries: normalize(entries, s.limit)}
}

func decode(data []byte) ([]domain.RecentSelection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stored []storedEntry
	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	out := make([]domain.RecentSelection, 0, len(stored))
	for _, e := range stored {
		sel, ok := e.selection()
		if !ok {
			continue
		}
		out = append(out, sel)
	}
	return out, nil
}

// normalize enforces the dedup and cap invariants on data written elsewhere
func normalize(entries []domain.RecentSelection, limit int) []domain.RecentSelection {
	seen := make(map[string]bool, len(entries))
	out := make([]domain.RecentSelection, 0, min(len(entries), limit))
	for _, e := range entries {
		if len(out) >= limit {
			break
		}
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

func (e storedEntry) selection() (domain.RecentSelection, bool) {
	var id string
	switch v := e.ID.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	}
	category := domain.Category(e.Category)
	if category == "" {
		category = domain.Category(e.Type)
	}
	if id == "" || !category.Valid() {
		return domain.RecentSelection{}, false
	}

	ts, _ := time.Parse(time.RFC3339Nano, e.Timestamp)
	return domain.RecentSelection{
		Query:     e.Query,
		Category:  category,
		ID:        id,
		Name:      e.Name,
		Timestamp: ts,
	}, true
}
