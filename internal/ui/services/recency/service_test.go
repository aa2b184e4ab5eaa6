package recency

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
	"crmsearch/internal/storage"
)

type memStore struct {
	values map[string][]byte
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (m *memStore) Get(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *memStore) Close() error { return nil }

type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func sel(id string, c domain.Category) domain.RecentSelection {
	return domain.RecentSelection{
		Query:     "q" + id,
		Category:  c,
		ID:        id,
		Name:      "Name " + id,
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func ids(list []domain.RecentSelection) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func TestRecordDedupCapOrder(t *testing.T) {
	s := NewService(newMemStore(), "", 0, nil)

	for i := 1; i <= 7; i++ {
		require.NoError(t, s.Record(sel(fmt.Sprint(i), domain.CategoryLead)))
	}
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, ids(s.List()))

	// re-selecting moves to front without growing
	require.NoError(t, s.Record(sel("4", domain.CategoryLead)))
	assert.Equal(t, []string{"4", "7", "6", "5", "3"}, ids(s.List()))
	assert.Equal(t, 5, s.Len())
}

func TestRecordReselectKeepsLength(t *testing.T) {
	s := NewService(newMemStore(), DefaultKey, DefaultLimit, nil)
	require.NoError(t, s.Record(sel("1", domain.CategoryLead)))
	require.NoError(t, s.Record(sel("2", domain.CategoryContact)))
	require.NoError(t, s.Record(sel("3", domain.CategoryCompany)))

	again := sel("1", domain.CategoryLead)
	again.Query = "newer"
	require.NoError(t, s.Record(again))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "newer", list[0].Query, "entry is replaced, not merged")
}

func TestPrependProperties(t *testing.T) {
	var list []domain.RecentSelection
	seq := []string{"a", "b", "a", "c", "d", "e", "f", "b", "b", "g", "a"}
	for _, id := range seq {
		list = Prepend(list, sel(id, domain.CategoryOpportunity), DefaultLimit)

		assert.LessOrEqual(t, len(list), DefaultLimit)
		assert.Equal(t, id, list[0].ID)
		seen := map[string]bool{}
		for _, e := range list {
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
		}
	}
	assert.Equal(t, []string{"a", "g", "b", "f", "e"}, ids(list))
}

func TestPersistAndReload(t *testing.T) {
	store := newMemStore()
	s := NewService(store, DefaultKey, DefaultLimit, nil)
	require.NoError(t, s.Record(sel("5", domain.CategoryCompany)))
	require.NoError(t, s.Record(sel("9", domain.CategoryContact)))

	reloaded := NewService(store, DefaultKey, DefaultLimit, nil)
	assert.True(t, reloaded.LoadResult().OK())
	assert.Equal(t, s.List(), reloaded.List())
}

func TestCorruptDataIsEmpty(t *testing.T) {
	store := newMemStore()
	store.values[DefaultKey] = []byte("{not json")
	bus := &recordingBus{}

	s := NewService(store, DefaultKey, DefaultLimit, bus)
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.LoadResult().Err, ErrCorrupt)

	require.Len(t, bus.events, 1)
	loaded := bus.events[0].(domain.RecentsLoadedEvent)
	assert.Equal(t, 0, loaded.Count)
	assert.Error(t, loaded.Err)

	// still usable afterwards
	require.NoError(t, s.Record(sel("1", domain.CategoryLead)))
	assert.Equal(t, 1, s.Len())
}

func TestLegacyEntries(t *testing.T) {
	store := newMemStore()
	store.values[DefaultKey] = []byte(`[
		{"query":"dav","type":"contact","id":2,"name":"David Levi","timestamp":"2024-03-01T12:00:00.000Z"},
		{"query":"acme","category":"company","id":"co1","name":"Acme","timestamp":"garbage"},
		{"query":"x","category":"planet","id":"p1","name":"Mars"},
		{"query":"y","category":"lead","name":"no id"},
		{"query":"dup","category":"lead","id":"co1","name":"dup"}
	]`)

	s := NewService(store, DefaultKey, DefaultLimit, nil)
	list := s.List()
	require.Len(t, list, 2)

	assert.Equal(t, domain.CategoryContact, list[0].Category)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), list[0].Timestamp.UTC())

	assert.Equal(t, "co1", list[1].ID)
	assert.True(t, list[1].Timestamp.IsZero())
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	bus := &recordingBus{}
	s := NewService(store, DefaultKey, DefaultLimit, bus)

	err := s.Record(sel("1", domain.CategoryLead))
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())

	last := bus.events[len(bus.events)-1]
	assert.Equal(t, eventbus.EventRecentsPersistFailed, last.Type())
}

func TestRecordRejectsEmptyID(t *testing.T) {
	s := NewService(newMemStore(), DefaultKey, DefaultLimit, nil)
	assert.Error(t, s.Record(domain.RecentSelection{Category: domain.CategoryLead}))
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	store := newMemStore()
	s := NewService(store, DefaultKey, DefaultLimit, nil)
	require.NoError(t, s.Record(sel("1", domain.CategoryLead)))

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	_, err := store.Get(DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListIsACopy(t *testing.T) {
	s := NewService(newMemStore(), DefaultKey, DefaultLimit, nil)
	require.NoError(t, s.Record(sel("1", domain.CategoryLead)))

	list := s.List()
	list[0].ID = "mutated"
	assert.Equal(t, "1", s.List()[0].ID)
}
