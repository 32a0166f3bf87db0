// Package highscore persists the top session scores
package highscore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// MaxEntries is the number of scores kept
const MaxEntries = 3

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("highscore: unknown backend")

// Entry is one finished session
type Entry struct {
	Score     int
	SessionID string
	At        time.Time
}

// Store loads and saves the top scores
// LoadTopScores returns at most MaxEntries scores in descending order
type Store interface {
	LoadTopScores(ctx context.Context) ([]int, error)
	SaveScore(ctx context.Context, e Entry) error
	Close() error
}

// Open returns the store for backend at path
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// topN sorts descending and truncates to MaxEntries
func topN(scores []int) []int {
	slices.SortFunc(scores, func(a, b int) int { return b - a })
	if len(scores) > MaxEntries {
		scores = scores[:MaxEntries]
	}
	return scores
}
