package core

import (
	"sync"
	"time"
)

// IDGenerator hands out unique int64 identifiers based on the wall
// clock in milliseconds. Two calls within the same millisecond bump
// the counter instead of colliding, so ids stay unique and roughly
// chronological within a process.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator backed by time.Now.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorAt creates a generator with an injected clock, for tests.
func NewIDGeneratorAt(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

// Next returns the next unique identifier.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
