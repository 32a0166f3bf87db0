package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/physics"
)

// boundaryFailWorld refuses to build the field
type boundaryFailWorld struct {
	*physics.ScriptedWorld
}

func (w boundaryFailWorld) CreateBoundary(kind physics.BodyKind, pos, halfExtents physics.Vec2, friction float64) (physics.Handle, error) {
	return 0, errors.New("no boundaries today")
}

func testRunEnv(stderr *strings.Builder, screen tcell.Screen) runEnv {
	return runEnv{
		stderr:    stderr,
		newScreen: func() (tcell.Screen, error) { return screen, nil },
	}
}

// TestRunInvalidConfig verifies a bad flag exits with code 2 before touching the terminal
func TestRunInvalidConfig(t *testing.T) {
	var stderr strings.Builder
	env := runEnv{
		stderr: &stderr,
		newScreen: func() (tcell.Screen, error) {
			t.Fatal("Screen created despite invalid configuration")
			return nil, nil
		},
	}

	if code := run([]string{"-scores", "floppy"}, env); code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Invalid configuration") {
		t.Errorf("Missing configuration error, stderr: %q", stderr.String())
	}
}

// TestRunSessionSetupFailure verifies a failed first session returns an exit code instead of exiting
func TestRunSessionSetupFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	var stderr strings.Builder
	env := testRunEnv(&stderr, tcell.NewSimulationScreen("UTF-8"))
	env.newSimulator = func() physics.Simulator {
		return boundaryFailWorld{physics.NewScriptedWorld()}
	}

	args := []string{"-audio=false", "-scores", "sqlite", "-score-db", filepath.Join(dir, "scores.db")}
	if code := run(args, env); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Session setup failed") {
		t.Errorf("Missing setup error, stderr: %q", stderr.String())
	}
}

// TestRunScreenFailure verifies a missing terminal is reported with code 1
func TestRunScreenFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stderr strings.Builder
	env := runEnv{
		stderr:    &stderr,
		newScreen: func() (tcell.Screen, error) { return nil, errors.New("no tty") },
	}

	args := []string{"-audio=false", "-score-file", filepath.Join(t.TempDir(), "scores.csv")}
	if code := run(args, env); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no tty") {
		t.Errorf("Missing screen error, stderr: %q", stderr.String())
	}
}
