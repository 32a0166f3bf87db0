package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/event"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/status"
)

// ErrUnknownTier is returned when spawning a tier outside the catalog
var ErrUnknownTier = errors.New("engine: unknown fruit tier")

// PendingSpawn describes a fruit to materialize after the current step
type PendingSpawn struct {
	Position physics.Vec2
	Tier     constants.Tier
}

// FruitState is a snapshot of one active fruit
type FruitState struct {
	Handle   physics.Handle
	Tier     constants.Tier
	Position physics.Vec2
}

// TopEdge returns the highest world y covered by the fruit
func (f FruitState) TopEdge() float64 {
	return f.Position.Y + f.Tier.Info().Radius
}

// DropTracker is the drop-cycle view needed while resolving contacts
type DropTracker interface {
	Tracked() (physics.Handle, bool)
	Land()
}

// MergeEngine owns the active fruit set and the deferred mutation queues
// OnContact runs inside the simulator's step and only enqueues; ApplyPending mutates between steps
type MergeEngine struct {
	sim     physics.Simulator
	tracker DropTracker
	events  *event.Queue
	logger  *log.Logger

	active map[physics.Handle]constants.Tier
	order  []physics.Handle // Spawn order, for deterministic snapshots

	removals    map[physics.Handle]struct{}
	removalList []physics.Handle // Insertion order of removals
	spawns      []PendingSpawn

	score int
	step  int64

	merges        *status.Counter
	annihilations *status.Counter
	failures      *status.Counter
	stale         *status.Counter
}

// NewMergeEngine creates an engine bound to a simulator
// tracker, events, stats and logger may be nil
func NewMergeEngine(sim physics.Simulator, tracker DropTracker, events *event.Queue, stats *status.Registry, logger *log.Logger) *MergeEngine {
	if stats == nil {
		stats = status.NewRegistry()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &MergeEngine{
		sim:      sim,
		tracker:  tracker,
		events:   events,
		logger:   logger,
		active:   make(map[physics.Handle]constants.Tier),
		removals: make(map[physics.Handle]struct{}),

		merges:        stats.Counter(status.Merges),
		annihilations: stats.Counter(status.Annihilations),
		failures:      stats.Counter(status.AdapterFailures),
		stale:         stats.Counter(status.StaleContacts),
	}
}

// SpawnFruit creates a fruit body and registers it in the active set
// Adapter errors are returned unchanged in the chain, never retried
func (m *MergeEngine) SpawnFruit(pos physics.Vec2, tier constants.Tier) (physics.Handle, error) {
	if !tier.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTier, tier)
	}
	r := tier.Info().Radius
	h, err := m.sim.CreateFruit(physics.FruitDef{
		Position:       pos,
		Radius:         r,
		Density:        constants.FruitMass / (math.Pi * r * r),
		Friction:       constants.FruitFriction,
		Restitution:    constants.FruitRestitution,
		AngularDamping: constants.FruitAngularDamping,
		LinearDamping:  constants.FruitLinearDamping,
	})
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", tier, err)
	}
	m.active[h] = tier
	m.order = append(m.order, h)
	return h, nil
}

// OnContact consumes one begin-contact event; it never touches the simulator's body set
func (m *MergeEngine) OnContact(a, b physics.Body) {
	if a.Kind == physics.KindWall || b.Kind == physics.KindWall {
		return
	}

	m.signalLanding(a.ID, b.ID)

	if a.Kind != physics.KindFruit || b.Kind != physics.KindFruit {
		return
	}
	m.resolve(a.ID, b.ID)
}

// signalLanding completes the drop cycle when exactly one side is the tracked drop
func (m *MergeEngine) signalLanding(a, b physics.Handle) {
	if m.tracker == nil {
		return
	}
	tracked, ok := m.tracker.Tracked()
	if !ok || (a == tracked) == (b == tracked) {
		return
	}
	tier := m.active[tracked]
	m.tracker.Land()
	m.emit(event.GameEvent{Type: event.EventLand, Tier: tier})
}

func (m *MergeEngine) resolve(a, b physics.Handle) {
	if a == b {
		return
	}
	tierA, okA := m.active[a]
	tierB, okB := m.active[b]
	if !okA || !okB {
		m.stale.Add(1)
		return
	}
	if tierA != tierB {
		return
	}
	// A body already queued has spent its one merge for this step
	if m.queued(a) || m.queued(b) {
		m.stale.Add(1)
		return
	}

	points := tierA.Info().Score

	if tierA.Terminal() {
		m.score += points
		m.enqueueRemoval(a)
		m.enqueueRemoval(b)
		m.annihilations.Add(1)
		m.emit(event.GameEvent{Type: event.EventAnnihilate, Tier: tierA, Score: points})
		return
	}

	posA, okA := m.sim.Position(a)
	posB, okB := m.sim.Position(b)
	if !okA || !okB {
		m.stale.Add(1)
		return
	}
	mid := posA.Midpoint(posB)

	m.score += points
	m.spawns = append(m.spawns, PendingSpawn{Position: mid, Tier: tierA.Next()})
	m.enqueueRemoval(a)
	m.enqueueRemoval(b)
	m.merges.Add(1)
	m.emit(event.GameEvent{Type: event.EventMerge, Tier: tierA, Score: points, Position: mid})
}

func (m *MergeEngine) queued(h physics.Handle) bool {
	_, ok := m.removals[h]
	return ok
}

// enqueueRemoval is idempotent
func (m *MergeEngine) enqueueRemoval(h physics.Handle) {
	if m.queued(h) {
		return
	}
	m.removals[h] = struct{}{}
	m.removalList = append(m.removalList, h)
}

// ApplyPending runs once per step after the simulator returns
// Removals apply before spawns; both queues are cleared even when individual mutations fail
func (m *MergeEngine) ApplyPending() {
	removals := m.removalList
	spawns := m.spawns
	m.removalList = nil
	m.spawns = nil
	clear(m.removals)

	for _, h := range removals {
		if err := m.sim.DestroyBody(h); err != nil {
			m.failures.Add(1)
			m.logger.Printf("Destroy body %d failed: %v", h, err)
		}
		m.deactivate(h)
	}

	for _, s := range spawns {
		if _, err := m.SpawnFruit(s.Position, s.Tier); err != nil {
			m.failures.Add(1)
			m.logger.Printf("Merge spawn at (%.2f, %.2f) failed: %v", s.Position.X, s.Position.Y, err)
		}
	}

	m.step++
}

func (m *MergeEngine) deactivate(h physics.Handle) {
	if _, ok := m.active[h]; !ok {
		return
	}
	delete(m.active, h)
	for i, id := range m.order {
		if id == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *MergeEngine) emit(ev event.GameEvent) {
	if m.events == nil {
		return
	}
	ev.Frame = m.step
	m.events.Push(ev)
}

// Score returns the session score
func (m *MergeEngine) Score() int {
	return m.score
}

// Len returns the active fruit count
func (m *MergeEngine) Len() int {
	return len(m.active)
}

// Steps returns the number of ApplyPending calls
func (m *MergeEngine) Steps() int64 {
	return m.step
}

// Contains reports whether h is in the active set
func (m *MergeEngine) Contains(h physics.Handle) bool {
	_, ok := m.active[h]
	return ok
}

// Tier returns the tier of an active fruit
func (m *MergeEngine) Tier(h physics.Handle) (constants.Tier, bool) {
	t, ok := m.active[h]
	return t, ok
}

// Bodies returns active fruits in spawn order with current positions
func (m *MergeEngine) Bodies() []FruitState {
	out := make([]FruitState, 0, len(m.order))
	for _, h := range m.order {
		pos, ok := m.sim.Position(h)
		if !ok {
			continue
		}
		out = append(out, FruitState{Handle: h, Tier: m.active[h], Position: pos})
	}
	return out
}

// PendingRemovals returns a copy of the removal queue
func (m *MergeEngine) PendingRemovals() []physics.Handle {
	return append([]physics.Handle(nil), m.removalList...)
}

// PendingSpawns returns a copy of the spawn queue
func (m *MergeEngine) PendingSpawns() []PendingSpawn {
	return append([]PendingSpawn(nil), m.spawns...)
}
