package main

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/audio"
	"github.com/lixenwraith/fruit-merge/core"
	"github.com/lixenwraith/fruit-merge/engine"
	"github.com/lixenwraith/fruit-merge/event"
	"github.com/lixenwraith/fruit-merge/highscore"
	"github.com/lixenwraith/fruit-merge/input"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/render"
	"github.com/lixenwraith/fruit-merge/status"
)

// game is the frame driver: it owns the current session and routes input, audio and rendering
type game struct {
	screen     tcell.Screen
	renderer   *render.TerminalRenderer
	translator *input.Translator
	sounds     *audio.SoundManager
	scores     highscore.Store
	events     *event.Queue
	logger     *log.Logger

	frameInterval time.Duration
	stepsPerFrame int
	seeds         *rand.Rand

	// newSimulator builds each session's world; nil uses box2d
	newSimulator func() physics.Simulator

	session *engine.Session
}

type gameConfig struct {
	Screen        tcell.Screen
	Sounds        *audio.SoundManager
	Scores        highscore.Store
	Logger        *log.Logger
	FrameInterval time.Duration
	StepsPerFrame int
	Seed          uint64
	NewSimulator  func() physics.Simulator
}

func newGame(ctx context.Context, cfg gameConfig) (*game, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := &game{
		screen:        cfg.Screen,
		renderer:      render.NewTerminalRenderer(cfg.Screen),
		translator:    input.NewTranslator(nil),
		sounds:        cfg.Sounds,
		scores:        cfg.Scores,
		events:        event.NewQueue(),
		logger:        cfg.Logger,
		frameInterval: cfg.FrameInterval,
		stepsPerFrame: max(cfg.StepsPerFrame, 1),
		seeds:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		newSimulator:  cfg.NewSimulator,
	}
	if g.sounds != nil {
		g.renderer.SetMuted(g.sounds.Muted())
	}
	if err := g.restart(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// restart replaces the session with a fresh one; nothing carries over but the store
func (g *game) restart(ctx context.Context) error {
	cfg := engine.SessionConfig{
		Scores: g.scores,
		Rand:   rand.New(rand.NewPCG(g.seeds.Uint64(), g.seeds.Uint64())),
		Events: g.events,
		Stats:  status.NewRegistry(),
		Logger: g.logger,
	}
	if g.newSimulator != nil {
		cfg.Simulator = g.newSimulator()
	}
	s, err := engine.NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	g.events.Consume()
	g.session = s
	return nil
}

// run drives frames until quit or ctx is done
func (g *game) run(ctx context.Context) {
	ticker := time.NewTicker(g.frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	g.render()
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ctx, ev) {
				return
			}

		case <-ticker.C:
			g.frame(ctx)
		}
	}
}

// frame advances the session, plays queued sounds and redraws
func (g *game) frame(ctx context.Context) {
	for range g.stepsPerFrame {
		if !g.session.Tick(ctx) {
			break
		}
	}
	for _, ev := range g.events.Consume() {
		if g.sounds != nil {
			g.sounds.HandleEvent(ev)
		}
	}
	g.render()
}

func (g *game) render() {
	g.renderer.RenderFrame(g.session.View())
}

// handleEvent applies one terminal event; returns false to quit
func (g *game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	intent := g.translator.Translate(ev)
	switch intent.Type {
	case input.IntentQuit:
		return false

	case input.IntentToggleMute:
		if g.sounds != nil {
			g.renderer.SetMuted(g.sounds.ToggleMute())
		}

	case input.IntentResize:
		g.renderer.Resize()
		g.screen.Sync()

	case input.IntentRestart:
		if !g.session.GameOver() {
			return true
		}
		if err := g.restart(ctx); err != nil {
			g.logger.Printf("Restart failed: %v", err)
		}

	case input.IntentMoveLeft:
		g.session.MoveGuide(engine.DirLeft)

	case input.IntentMoveRight:
		g.session.MoveGuide(engine.DirRight)

	case input.IntentGuide:
		g.session.SetGuide(intent.GuideX)

	case input.IntentDrop:
		if intent.HasGuide {
			g.session.SetGuide(intent.GuideX)
		}
		g.session.Drop()
	}
	return true
}
