package answer

import (
	"sync"

	"github.com/sells-group/citation-cli/internal/model"
)

// History keeps a bounded, in-memory log of past discoveries. Oldest
// entries are evicted once the limit is reached.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []model.Discovery
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 50
	}
	return &History{limit: limit}
}

// Add appends a discovery, evicting the oldest entry when full.
func (h *History) Add(d model.Discovery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, d)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (h *History) List(limit int) []model.Discovery {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.Discovery, 0, n)
	for i := len(h.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Len reports the number of stored entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
