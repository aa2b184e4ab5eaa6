package results

import "crmsearch/internal/domain"

// State holds the current result set and its flattened view
type State struct {
	Set     *domain.ResultSet
	Flat    []domain.FlatEntry
	Version uint64 // bumped on every replace or clear
}

// Section is one non-empty category as laid out in the flattened sequence
type Section struct {
	Category domain.Category
	Items    []domain.ResultItem
	Offset   int // flat index of the first item
}
