package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/event"
	"github.com/lixenwraith/fruit-merge/highscore"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/status"
)

// SessionConfig wires a session's collaborators; zero values get defaults
type SessionConfig struct {
	Simulator physics.Simulator // Defaults to a box2d world with standard gravity
	Scores    highscore.Store   // Nil disables persistence
	Rand      *rand.Rand        // Defaults to a time-seeded PCG
	Events    *event.Queue
	Stats     *status.Registry
	Logger    *log.Logger
}

// View is a read-only frame snapshot for rendering
type View struct {
	Bodies    []FruitState
	GuideX    int
	DropX     float64 // World x the current fruit spawns at
	Current   constants.Tier
	Next      constants.Tier
	State     DropState
	Score     int
	TopScores []int
	GameOver  bool
	Stats     *status.Registry
}

// Session is one independent game: all mutable game state lives here, owned by the frame driver
type Session struct {
	ID uuid.UUID

	sim     physics.Simulator
	merge   *MergeEngine
	drop    *DropCycle
	monitor *GameOverMonitor
	scores  highscore.Store
	top     []int

	events *event.Queue
	stats  *status.Registry
	logger *log.Logger

	steps    *status.Counter
	drops    *status.Counter
	failures *status.Counter
}

// NewSession builds the field boundaries, hooks the contact listener and loads the top scores
func NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if cfg.Simulator == nil {
		cfg.Simulator = physics.NewWorld(physics.Vec2{X: constants.GravityX, Y: constants.GravityY})
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if cfg.Stats == nil {
		cfg.Stats = status.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		ID:       uuid.New(),
		sim:      cfg.Simulator,
		drop:     NewDropCycle(cfg.Rand),
		monitor:  NewGameOverMonitor(constants.GameOverLine),
		scores:   cfg.Scores,
		events:   cfg.Events,
		stats:    cfg.Stats,
		logger:   cfg.Logger,
		steps:    cfg.Stats.Counter(status.Steps),
		drops:    cfg.Stats.Counter(status.Drops),
		failures: cfg.Stats.Counter(status.AdapterFailures),
	}
	s.merge = NewMergeEngine(cfg.Simulator, s.drop, cfg.Events, cfg.Stats, cfg.Logger)

	if err := s.buildField(); err != nil {
		return nil, err
	}
	s.sim.OnBeginContact(s.merge.OnContact)

	s.top = s.loadTopScores(ctx)
	s.logger.Printf("Session %s started, top scores %v", s.ID, s.top)
	return s, nil
}

func (s *Session) buildField() error {
	if _, err := s.sim.CreateBoundary(physics.KindFloor,
		physics.Vec2{X: constants.FloorX, Y: constants.FloorY},
		physics.Vec2{X: constants.FloorHalfWidth, Y: constants.FloorHalfDepth},
		constants.FloorFriction); err != nil {
		return fmt.Errorf("create floor: %w", err)
	}
	for _, x := range []float64{constants.LeftWallX, constants.RightWallX} {
		if _, err := s.sim.CreateBoundary(physics.KindWall,
			physics.Vec2{X: x, Y: constants.WallY},
			physics.Vec2{X: constants.WallHalfWidth, Y: constants.WallHalfHeight},
			constants.FruitFriction); err != nil {
			return fmt.Errorf("create wall at x=%.1f: %w", x, err)
		}
	}
	return nil
}

// loadTopScores never fails the session; errors read as an empty list
func (s *Session) loadTopScores(ctx context.Context) []int {
	if s.scores == nil {
		return []int{}
	}
	top, err := s.scores.LoadTopScores(ctx)
	if err != nil {
		s.logger.Printf("Load high scores failed: %v", err)
		return []int{}
	}
	return top
}

// Tick advances one fixed step, applies deferred mutations and runs the game-over scan
// Returns false once the session is over; later calls do nothing
func (s *Session) Tick(ctx context.Context) bool {
	if s.monitor.Over() {
		return false
	}

	s.sim.Step(constants.StepSeconds, constants.VelocityIterations, constants.PositionIterations)
	s.merge.ApplyPending()
	s.steps.Add(1)

	tracked, ok := s.drop.Tracked()
	if s.monitor.Check(s.merge.Bodies(), tracked, ok) {
		s.finish(ctx)
		return false
	}
	return true
}

// finish runs exactly once, on the game-over transition
func (s *Session) finish(ctx context.Context) {
	score := s.merge.Score()
	s.stats.SetGameOver()
	if s.events != nil {
		s.events.Push(event.GameEvent{Type: event.EventGameOver, Score: score, Frame: s.merge.Steps()})
	}
	s.logger.Printf("Session %s over: score=%d %s", s.ID, score, s.stats)

	if s.scores == nil || !Qualifies(s.top, score) {
		return
	}
	entry := highscore.Entry{Score: score, SessionID: s.ID.String(), At: time.Now()}
	if err := s.scores.SaveScore(ctx, entry); err != nil {
		s.logger.Printf("Save high score failed: %v", err)
		return
	}
	top, err := s.scores.LoadTopScores(ctx)
	if err != nil {
		s.logger.Printf("Reload high scores failed: %v", err)
		return
	}
	s.top = top
}

// Qualifies reports whether score enters the displayed top list
func Qualifies(top []int, score int) bool {
	return len(top) < constants.MaxTopScores || score > top[len(top)-1]
}

// Drop releases the current fruit; ignored while one is in flight or after game over
func (s *Session) Drop() {
	if s.monitor.Over() {
		return
	}
	tier := s.drop.Current()
	h, ok, err := s.drop.RequestDrop(s.merge)
	if err != nil {
		s.failures.Add(1)
		s.logger.Printf("Drop failed: %v", err)
		return
	}
	if !ok {
		return
	}
	s.drops.Add(1)
	if s.events != nil {
		pos, _ := s.sim.Position(h)
		s.events.Push(event.GameEvent{Type: event.EventDrop, Tier: tier, Position: pos, Frame: s.merge.Steps()})
	}
}

// MoveGuide shifts the guide by one keyboard step
func (s *Session) MoveGuide(dir Direction) {
	if s.monitor.Over() {
		return
	}
	s.drop.MoveGuide(dir, constants.GuideStep)
}

// SetGuide places the guide at a pixel x, as from the mouse
func (s *Session) SetGuide(x int) {
	if s.monitor.Over() {
		return
	}
	s.drop.SetGuide(x)
}

// View snapshots the session for the renderer
func (s *Session) View() View {
	return View{
		Bodies:    s.merge.Bodies(),
		GuideX:    s.drop.GuideX(),
		DropX:     s.drop.DropX(),
		Current:   s.drop.Current(),
		Next:      s.drop.Next(),
		State:     s.drop.State(),
		Score:     s.merge.Score(),
		TopScores: append([]int(nil), s.top...),
		GameOver:  s.monitor.Over(),
		Stats:     s.stats,
	}
}

func (s *Session) Score() int                   { return s.merge.Score() }
func (s *Session) GameOver() bool               { return s.monitor.Over() }
func (s *Session) TopScores() []int             { return append([]int(nil), s.top...) }
func (s *Session) Merge() *MergeEngine          { return s.merge }
func (s *Session) DropCycle() *DropCycle        { return s.drop }
func (s *Session) Stats() *status.Registry      { return s.stats }
func (s *Session) Simulator() physics.Simulator { return s.sim }
