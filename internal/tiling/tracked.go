package tiling

import (
	"slices"

	"github.com/1broseidon/splitwm/internal/platform"
)

// MaxTiled is the number of windows the layout arranges.
const MaxTiled = 2

// Evictor picks which tracked window to drop when the set overflows.
// It receives the set in arrival order, already including the newest window,
// and returns the index to remove.
type Evictor func(windows []platform.WindowID) int

// EvictOldest drops the earliest arrival.
func EvictOldest(windows []platform.WindowID) int {
	return 0
}

// Tracked is the ordered set of windows under layout, oldest first.
type Tracked struct {
	capacity int
	evict    Evictor
	windows  []platform.WindowID
}

// NewTracked creates an empty set holding at most capacity windows.
// A nil evictor means EvictOldest; capacity below 1 is treated as 1.
func NewTracked(capacity int, evict Evictor) *Tracked {
	if capacity < 1 {
		capacity = 1
	}
	if evict == nil {
		evict = EvictOldest
	}
	return &Tracked{
		capacity: capacity,
		evict:    evict,
		windows:  make([]platform.WindowID, 0, capacity+1),
	}
}

// Add appends a window. A window already present is left where it is.
// It returns the evicted window, if any.
func (t *Tracked) Add(id platform.WindowID) (evicted platform.WindowID, ok bool) {
	if t.Contains(id) {
		return 0, false
	}
	t.windows = append(t.windows, id)
	if len(t.windows) <= t.capacity {
		return 0, false
	}

	idx := t.evict(t.windows)
	if idx < 0 || idx >= len(t.windows) {
		idx = 0
	}
	evicted = t.windows[idx]
	t.windows = slices.Delete(t.windows, idx, idx+1)
	return evicted, true
}

// Remove drops a window. Unknown windows are ignored.
func (t *Tracked) Remove(id platform.WindowID) bool {
	idx := slices.Index(t.windows, id)
	if idx < 0 {
		return false
	}
	t.windows = slices.Delete(t.windows, idx, idx+1)
	return true
}

// Contains reports whether id is tracked.
func (t *Tracked) Contains(id platform.WindowID) bool {
	return slices.Contains(t.windows, id)
}

// Len returns the number of tracked windows.
func (t *Tracked) Len() int {
	return len(t.windows)
}

// Windows returns a copy of the set in arrival order.
func (t *Tracked) Windows() []platform.WindowID {
	return slices.Clone(t.windows)
}
