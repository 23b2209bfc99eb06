package core

import (
	"sync"

	"layerplot/internal/types"
)

// AssignmentCache remembers which palette slot each categorical value was
// given, per namespace, so a category keeps its colour (or size, or symbol)
// across every layer of one render. Slots are handed out in order of first
// request.
type AssignmentCache struct {
	mu    sync.Mutex
	slots map[string]map[string]int
}

func NewAssignmentCache() *AssignmentCache {
	return &AssignmentCache{slots: map[string]map[string]int{}}
}

// Slot returns the slot of raw within namespace, assigning the next one on
// first use. Slots cycle modulo size.
func (c *AssignmentCache) Slot(namespace string, raw string, size int) int {
	if size <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slots == nil {
		c.slots = map[string]map[string]int{}
	}
	assigned, ok := c.slots[namespace]
	if !ok {
		assigned = map[string]int{}
		c.slots[namespace] = assigned
	}
	n, ok := assigned[raw]
	if !ok {
		n = len(assigned)
		assigned[raw] = n
	}
	return n % size
}

func (c *AssignmentCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = map[string]map[string]int{}
}

func (c *AssignmentCache) Len(namespace string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots[namespace])
}

// Slotter hands out palette slots. Both the cache and a resolution scope
// satisfy it.
type Slotter interface {
	Slot(namespace string, raw string, size int) int
}

// Assign returns the palette value for raw within namespace.
func Assign[T any](s Slotter, namespace string, raw string, palette []T) T {
	var zero T
	if len(palette) == 0 {
		return zero
	}
	return palette[s.Slot(namespace, raw, len(palette))]
}

var (
	_ Slotter = (*AssignmentCache)(nil)
	_ Slotter = types.Context(nil)
)
