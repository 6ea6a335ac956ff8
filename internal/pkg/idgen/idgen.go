// Package idgen issues photo identifiers: decimal millisecond timestamps
// that are strictly increasing within a process.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to pin the clock.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the current time in milliseconds, or one more than the last
// issued value if the clock has not advanced past it.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
