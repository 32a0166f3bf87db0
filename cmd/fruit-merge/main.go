package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/audio"
	"github.com/lixenwraith/fruit-merge/config"
	"github.com/lixenwraith/fruit-merge/core"
	"github.com/lixenwraith/fruit-merge/highscore"
	"github.com/lixenwraith/fruit-merge/physics"
)

// runEnv is the process surface run depends on
type runEnv struct {
	stderr    io.Writer
	newScreen func() (tcell.Screen, error)
	// newSimulator overrides the box2d world when set
	newSimulator func() physics.Simulator
}

func main() {
	os.Exit(run(os.Args[1:], runEnv{stderr: os.Stderr, newScreen: tcell.NewScreen}))
}

// run plays until quit and returns the process exit code
// Every deferred cleanup has run by the time it returns
func run(args []string, env runEnv) int {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	fs := flag.NewFlagSet("fruit-merge", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	cfg, err := config.Parse(fs, args)
	if err != nil {
		fmt.Fprintf(env.stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	logger := log.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence is optional: a broken store leaves the game playable
	var scores highscore.Store
	if store, err := highscore.Open(cfg.ScoreBackend, cfg.ScorePath()); err != nil {
		logger.Printf("High score store unavailable: %v (continuing without persistence)", err)
	} else {
		scores = store
		defer store.Close()
	}

	screen, err := env.newScreen()
	if err != nil {
		fmt.Fprintf(env.stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(env.stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	core.RegisterScreen(screen)
	closed := false
	closeScreen := func() {
		if closed {
			return
		}
		closed = true
		core.RegisterScreen(nil)
		screen.Fini()
	}
	// Normal exit terminal cleanup
	defer closeScreen()
	screen.EnableMouse()
	screen.HideCursor()

	audioCfg := audio.DefaultAudioConfig()
	audioCfg.Enabled = cfg.Audio
	audioCfg.MasterVolume = cfg.Volume
	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		logger.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer sounds.Cleanup()

	g, err := newGame(ctx, gameConfig{
		Screen:        screen,
		Sounds:        sounds,
		Scores:        scores,
		Logger:        logger,
		FrameInterval: cfg.FrameInterval,
		StepsPerFrame: cfg.StepsPerFrame(),
		Seed:          cfg.Seed,
		NewSimulator:  env.newSimulator,
	})
	if err != nil {
		// Terminal must be restored before the message is readable
		closeScreen()
		fmt.Fprintf(env.stderr, "Session setup failed: %v\n", err)
		return 1
	}
	g.run(ctx)
	return 0
}
