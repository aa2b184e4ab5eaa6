package results

import "crmsearch/internal/domain"

// Flatten concatenates categories in domain.Categories order, keeping the
// provider's order inside each category.
func Flatten(rs *domain.ResultSet) []domain.FlatEntry {
	if rs == nil {
		return nil
	}
	flat := make([]domain.FlatEntry, 0, rs.Len())
	for _, c := range domain.Categories {
		for _, item := range rs.Items(c) {
			flat = append(flat, domain.FlatEntry{Category: c, Item: item})
		}
	}
	return flat
}

// Service owns the current result set. Everything else reads it.
type Service struct {
	state *State
}

// NewService creates an empty results service
func NewService() *Service {
	return &Service{state: &State{}}
}

// Replace swaps in a new result set wholesale
func (s *Service) Replace(rs *domain.ResultSet) {
	s.state.Set = rs
	s.state.Flat = Flatten(rs)
	s.state.Version++
}

// Clear drops the current result set
func (s *Service) Clear() {
	s.Replace(nil)
}

// HasResults reports whether a response is currently applied (possibly empty)
func (s *Service) HasResults() bool {
	return s.state.Set != nil
}

// Set returns the current result set, nil when cleared
func (s *Service) Set() *domain.ResultSet {
	return s.state.Set
}

// Flat returns the flattened sequence
func (s *Service) Flat() []domain.FlatEntry {
	return s.state.Flat
}

// Len returns the flattened length
func (s *Service) Len() int {
	return len(s.state.Flat)
}

// At returns the entry at a flat index
func (s *Service) At(index int) (domain.FlatEntry, bool) {
	if index < 0 || index >= len(s.state.Flat) {
		return domain.FlatEntry{}, false
	}
	return s.state.Flat[index], true
}

// Version changes whenever the set is replaced or cleared
func (s *Service) Version() uint64 {
	return s.state.Version
}

// Sections returns the non-empty categories with their flat offsets
func (s *Service) Sections() []Section {
	var sections []Section
	offset := 0
	for _, c := range domain.Categories {
		items := s.state.Set.Items(c)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{Category: c, Items: items, Offset: offset})
		offset += len(items)
	}
	return sections
}
