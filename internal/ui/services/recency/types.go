package recency

import (
	"errors"

	"crmsearch/internal/domain"
)

const (
	DefaultKey   = "crm_recent_searches"
	DefaultLimit = 5
)

// ErrCorrupt reports stored recents that could not be decoded
var ErrCorrupt = errors.New("recency: stored recents are corrupt")

// LoadResult is the outcome of reading the persisted list.
// On failure Entries is empty and Err says why.
type LoadResult struct {
	Entries []domain.RecentSelection
	Err     error
}

// OK reports whether the stored list was read cleanly
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// storedEntry is the persisted shape. Older writers used "type" for the
// category and numeric ids.
type storedEntry struct {
	Query     string `json:"query"`
	Category  string `json:"category,omitempty"`
	Type      string `json:"type,omitempty"`
	ID        any    `json:"id"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}
