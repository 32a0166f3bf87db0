// Package status holds named session counters for the side panel and logs
package status

import (
	"fmt"
	"sort"
	"strings"
)

// Counter names written by the engine
const (
	Steps           = "engine.steps"
	Drops           = "engine.drops"
	Merges          = "engine.merges"
	Annihilations   = "engine.annihilations"
	AdapterFailures = "engine.adapter_failures"
	StaleContacts   = "engine.stale_contacts"
)

var counterNames = []string{Steps, Drops, Merges, Annihilations, AdapterFailures, StaleContacts}

// Counter is a monotonically increasing session count
// Owned by the frame goroutine; not safe for concurrent use
type Counter struct {
	n int64
}

// Add increments the counter by delta
func (c *Counter) Add(delta int64) { c.n += delta }

// Load returns the current count
func (c *Counter) Load() int64 { return c.n }

// Registry is one session's counters plus its game-over mirror
type Registry struct {
	counters map[string]*Counter
	gameOver bool
}

// NewRegistry creates a Registry with every engine counter registered at zero
func NewRegistry() *Registry {
	r := &Registry{counters: make(map[string]*Counter, len(counterNames))}
	for _, name := range counterNames {
		r.counters[name] = &Counter{}
	}
	return r
}

// Counter returns the counter for key, registering it if absent
// Components cache the pointer at construction
func (r *Registry) Counter(key string) *Counter {
	c, ok := r.counters[key]
	if !ok {
		c = &Counter{}
		r.counters[key] = c
	}
	return c
}

// Int returns the current value of a counter, zero if never registered
func (r *Registry) Int(key string) int64 {
	if c, ok := r.counters[key]; ok {
		return c.Load()
	}
	return 0
}

// Len returns the number of registered counters
func (r *Registry) Len() int { return len(r.counters) }

// SetGameOver mirrors the session latch for observers
func (r *Registry) SetGameOver() { r.gameOver = true }

// GameOver reports whether the owning session has ended
func (r *Registry) GameOver() bool { return r.gameOver }

// String renders all counters as key=value pairs sorted by key
func (r *Registry) String() string {
	keys := make([]string, 0, len(r.counters))
	for k := range r.counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", k, r.counters[k].n)
	}
	return b.String()
}
