package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/event"
	"github.com/lixenwraith/fruit-merge/highscore"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/status"
)

// memStore is an in-memory highscore.Store
type memStore struct {
	top     []int
	saves   []highscore.Entry
	loadErr error
	saveErr error
}

func (m *memStore) LoadTopScores(ctx context.Context) ([]int, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]int{}, m.top...), nil
}

func (m *memStore) SaveScore(ctx context.Context, e highscore.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, e)
	m.top = append(m.top, e.Score)
	slices.SortFunc(m.top, func(a, b int) int { return b - a })
	if len(m.top) > constants.MaxTopScores {
		m.top = m.top[:constants.MaxTopScores]
	}
	return nil
}

func (m *memStore) Close() error { return nil }

type sessionFixture struct {
	sim     *physics.ScriptedWorld
	store   *memStore
	events  *event.Queue
	session *Session
}

func newSessionFixture(t *testing.T, store *memStore) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		sim:    physics.NewScriptedWorld(),
		store:  store,
		events: event.NewQueue(),
	}
	s, err := NewSession(context.Background(), SessionConfig{
		Simulator: f.sim,
		Scores:    store,
		Rand:      rand.New(rand.NewPCG(3, 5)),
		Events:    f.events,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	f.session = s
	return f
}

// overflow places a settled fruit above the game-over line
func (f *sessionFixture) overflow(t *testing.T) {
	t.Helper()
	if _, err := f.session.Merge().SpawnFruit(physics.Vec2{X: 6, Y: constants.GameOverLine + 1}, constants.TierCherry); err != nil {
		t.Fatalf("SpawnFruit failed: %v", err)
	}
}

// TestSessionBuildsField verifies the floor and two walls exist before play
func TestSessionBuildsField(t *testing.T) {
	f := newSessionFixture(t, &memStore{})

	if f.sim.BodyCount() != 3 {
		t.Fatalf("Expected 3 boundary bodies, got %d", f.sim.BodyCount())
	}
	kinds := map[physics.BodyKind]int{}
	for h := physics.Handle(1); h <= 3; h++ {
		k, _ := f.sim.Kind(h)
		kinds[k]++
	}
	if kinds[physics.KindFloor] != 1 || kinds[physics.KindWall] != 2 {
		t.Errorf("Unexpected boundary kinds: %v", kinds)
	}
	if f.session.Merge().Len() != 0 {
		t.Error("Boundaries must not enter the active fruit set")
	}
}

// TestSessionDropAndLand verifies one full drop cycle through the floor
func TestSessionDropAndLand(t *testing.T) {
	f := newSessionFixture(t, &memStore{})
	current := f.session.DropCycle().Current()

	f.session.Drop()
	if f.session.DropCycle().State() != StateDropping {
		t.Fatalf("Expected dropping, got %s", f.session.DropCycle().State())
	}
	drop, _ := f.session.DropCycle().Tracked()

	// Tracked drop above the line must not end the game
	if !f.session.Tick(context.Background()) {
		t.Fatal("Game over while fruit was still falling")
	}

	f.sim.SetPosition(drop, physics.Vec2{X: 6, Y: 1})
	f.sim.QueueContact(drop, 1)
	f.session.Tick(context.Background())

	if f.session.DropCycle().State() != StateReady {
		t.Errorf("Expected ready after landing, got %s", f.session.DropCycle().State())
	}

	evs := f.events.Consume()
	if len(evs) != 2 || evs[0].Type != event.EventDrop || evs[1].Type != event.EventLand {
		t.Fatalf("Expected drop then land events, got %+v", evs)
	}
	if evs[0].Tier != current {
		t.Errorf("Expected drop tier %s, got %s", current, evs[0].Tier)
	}
	if f.session.Stats().Int(status.Drops) != 1 || f.session.Stats().Int(status.Steps) != 2 {
		t.Errorf("Unexpected counters: %s", f.session.Stats())
	}
}

// TestSessionDropGated verifies input while dropping spawns nothing
func TestSessionDropGated(t *testing.T) {
	f := newSessionFixture(t, &memStore{})
	f.session.Drop()
	f.session.Drop()
	f.session.Drop()

	if f.session.Merge().Len() != 1 {
		t.Errorf("Expected 1 fruit, got %d", f.session.Merge().Len())
	}
}

// TestSessionGameOverSavesOnce verifies the gateway is invoked exactly once per game over
func TestSessionGameOverSavesOnce(t *testing.T) {
	store := &memStore{top: []int{50, 20}}
	f := newSessionFixture(t, store)
	f.session.Merge().score = 35
	f.overflow(t)

	if f.session.Tick(context.Background()) {
		t.Fatal("Expected game over")
	}
	for range 5 {
		if f.session.Tick(context.Background()) {
			t.Fatal("Tick resumed after game over")
		}
	}

	if len(store.saves) != 1 {
		t.Fatalf("Expected exactly one save, got %d", len(store.saves))
	}
	if store.saves[0].Score != 35 || store.saves[0].SessionID != f.session.ID.String() {
		t.Errorf("Unexpected save %+v", store.saves[0])
	}
	if want := []int{50, 35, 20}; !slices.Equal(f.session.TopScores(), want) {
		t.Errorf("Expected top %v after reload, got %v", want, f.session.TopScores())
	}
	if !f.session.Stats().GameOver() {
		t.Error("Game-over flag not published")
	}

	overs := 0
	for _, ev := range f.events.Consume() {
		if ev.Type == event.EventGameOver {
			overs++
			if ev.Score != 35 {
				t.Errorf("Expected final score 35, got %d", ev.Score)
			}
		}
	}
	if overs != 1 {
		t.Errorf("Expected 1 game-over event, got %d", overs)
	}
}

// TestSessionNonQualifyingScoreNotSaved verifies a full list rejects a low score
func TestSessionNonQualifyingScoreNotSaved(t *testing.T) {
	store := &memStore{top: []int{90, 80, 70}}
	f := newSessionFixture(t, store)
	f.session.Merge().score = 70
	f.overflow(t)
	f.session.Tick(context.Background())

	if len(store.saves) != 0 {
		t.Errorf("Expected no save, got %+v", store.saves)
	}
}

// TestSessionInputIgnoredAfterGameOver verifies the latch freezes play
func TestSessionInputIgnoredAfterGameOver(t *testing.T) {
	f := newSessionFixture(t, &memStore{})
	f.overflow(t)
	f.session.Tick(context.Background())

	guide := f.session.DropCycle().GuideX()
	before := f.session.Merge().Len()
	f.session.Drop()
	f.session.MoveGuide(DirRight)
	f.session.SetGuide(10)

	if f.session.Merge().Len() != before {
		t.Error("Drop accepted after game over")
	}
	if f.session.DropCycle().GuideX() != guide {
		t.Error("Guide moved after game over")
	}
	if !f.session.View().GameOver {
		t.Error("View does not report game over")
	}
}

// TestSessionStoreFailuresAreSoft verifies storage errors never fail the session
func TestSessionStoreFailuresAreSoft(t *testing.T) {
	store := &memStore{
		loadErr: errors.New("disk gone"),
		saveErr: errors.New("disk gone"),
	}
	f := newSessionFixture(t, store)
	if top := f.session.TopScores(); len(top) != 0 {
		t.Errorf("Expected empty top on load failure, got %v", top)
	}

	f.overflow(t)
	if f.session.Tick(context.Background()) {
		t.Error("Expected game over")
	}
	if !f.session.GameOver() {
		t.Error("Save failure blocked game over")
	}
}

// TestSessionWithoutStore verifies persistence is optional
func TestSessionWithoutStore(t *testing.T) {
	s, err := NewSession(context.Background(), SessionConfig{Simulator: physics.NewScriptedWorld()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if _, err := s.Merge().SpawnFruit(physics.Vec2{X: 6, Y: 30}, constants.TierCherry); err != nil {
		t.Fatalf("SpawnFruit failed: %v", err)
	}
	if s.Tick(context.Background()) {
		t.Error("Expected game over")
	}
}

// TestSessionRestartIsIndependent verifies a new session starts clean
func TestSessionRestartIsIndependent(t *testing.T) {
	store := &memStore{}
	first := newSessionFixture(t, store)
	first.session.Merge().score = 12
	first.overflow(t)
	first.session.Tick(context.Background())

	second := newSessionFixture(t, store)
	if second.session.ID == first.session.ID {
		t.Error("Sessions share an ID")
	}
	if second.session.Score() != 0 || second.session.GameOver() {
		t.Error("New session inherited state")
	}
	if !slices.Equal(second.session.TopScores(), []int{12}) {
		t.Errorf("Expected persisted top [12], got %v", second.session.TopScores())
	}
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name  string
		top   []int
		score int
		want  bool
	}{
		{"empty list", nil, 0, true},
		{"short list", []int{10, 5}, 1, true},
		{"full list beats last", []int{10, 5, 3}, 4, true},
		{"full list ties last", []int{10, 5, 3}, 3, false},
		{"full list below last", []int{10, 5, 3}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Qualifies(tt.top, tt.score); got != tt.want {
				t.Errorf("Qualifies(%v, %d) = %v, want %v", tt.top, tt.score, got, tt.want)
			}
		})
	}
}

// TestSessionBox2DSmoke runs a real world for a few seconds of simulated time
func TestSessionBox2DSmoke(t *testing.T) {
	s, err := NewSession(context.Background(), SessionConfig{Rand: rand.New(rand.NewPCG(1, 1))})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.Drop()
	for range 240 {
		if !s.Tick(context.Background()) {
			t.Fatal("Unexpected game over on a near-empty field")
		}
	}
	if s.DropCycle().State() != StateReady {
		t.Errorf("Fruit never landed, state %s", s.DropCycle().State())
	}
	if s.Merge().Len() != 1 {
		t.Errorf("Expected 1 fruit, got %d", s.Merge().Len())
	}
}

// TestSessionBox2DRightEdgeStaysInField drops at the right guide limit and expects the fruit to settle inside
func TestSessionBox2DRightEdgeStaysInField(t *testing.T) {
	s, err := NewSession(context.Background(), SessionConfig{Rand: rand.New(rand.NewPCG(2, 9))})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.SetGuide(constants.FieldWidthPixels)
	s.Drop()
	for range 300 {
		s.Tick(context.Background())
	}

	bodies := s.Merge().Bodies()
	if len(bodies) != 1 {
		t.Fatalf("Expected 1 fruit, got %d", len(bodies))
	}
	pos := bodies[0].Position
	if pos.X < constants.LeftWallX || pos.X > constants.RightWallX || pos.Y < constants.FloorY {
		t.Errorf("Fruit escaped the field: x=%.3f y=%.3f", pos.X, pos.Y)
	}
	if s.DropCycle().State() != StateReady {
		t.Errorf("Fruit never landed, state %s", s.DropCycle().State())
	}
}
