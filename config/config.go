// Package config resolves runtime settings from the environment and command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/highscore"
)

// Default storage locations, relative to the user's home directory
const (
	defaultDir       = ".fruit-merge"
	defaultScoreFile = "highscore.csv"
	defaultScoreDB   = "scores.db"
)

var (
	ErrVolumeRange   = errors.New("config: volume must be within [0,1]")
	ErrFrameInterval = errors.New("config: frame interval must be positive")
)

// Config holds the game's runtime settings
// Environment variables seed the values; flags override them
type Config struct {
	ScoreBackend  string        `env:"FRUIT_MERGE_SCORE_BACKEND"  envDefault:"file"`
	ScoreFile     string        `env:"FRUIT_MERGE_SCORE_FILE"`
	ScoreDB       string        `env:"FRUIT_MERGE_SCORE_DB"`
	Audio         bool          `env:"FRUIT_MERGE_AUDIO"          envDefault:"true"`
	Volume        float64       `env:"FRUIT_MERGE_VOLUME"         envDefault:"0.6"`
	Debug         bool          `env:"FRUIT_MERGE_DEBUG"`
	Seed          uint64        `env:"FRUIT_MERGE_SEED"`
	FrameInterval time.Duration `env:"FRUIT_MERGE_FRAME_INTERVAL" envDefault:"16ms"`
}

// Parse reads the environment then overlays flags from args
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.ScoreBackend, "scores", cfg.ScoreBackend, "high score backend: file or sqlite")
	fs.StringVar(&cfg.ScoreFile, "score-file", cfg.ScoreFile, "high score file path (file backend)")
	fs.StringVar(&cfg.ScoreDB, "score-db", cfg.ScoreDB, "high score database path (sqlite backend)")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "enable sound effects")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "master volume in [0,1]")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write debug log to logs/")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "fruit sequence seed, 0 for time based")
	fs.DurationVar(&cfg.FrameInterval, "frame", cfg.FrameInterval, "frame interval")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.resolvePaths(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// resolvePaths fills empty storage paths under the home directory
func (c *Config) resolvePaths() error {
	if c.ScoreFile != "" && c.ScoreDB != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	if c.ScoreFile == "" {
		c.ScoreFile = filepath.Join(home, defaultDir, defaultScoreFile)
	}
	if c.ScoreDB == "" {
		c.ScoreDB = filepath.Join(home, defaultDir, defaultScoreDB)
	}
	return nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch c.ScoreBackend {
	case highscore.BackendFile, highscore.BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", highscore.ErrUnknownBackend, c.ScoreBackend)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: %.2f", ErrVolumeRange, c.Volume)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: %s", ErrFrameInterval, c.FrameInterval)
	}
	return nil
}

// ScorePath returns the storage path for the selected backend
func (c Config) ScorePath() string {
	if c.ScoreBackend == highscore.BackendSQLite {
		return c.ScoreDB
	}
	return c.ScoreFile
}

// StepsPerFrame returns how many fixed physics steps cover one frame, at least one
func (c Config) StepsPerFrame() int {
	step := constants.StepDuration
	return max(int((c.FrameInterval+step/2)/step), 1)
}
