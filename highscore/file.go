package highscore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileStore keeps scores as newline-delimited integers
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// LoadTopScores reads up to MaxEntries valid lines; malformed lines are skipped
// A missing file is an empty list, not an error
func (s *FileStore) LoadTopScores(ctx context.Context) ([]int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open score file: %w", err)
	}
	defer f.Close()

	scores := make([]int, 0, MaxEntries)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(scores) < MaxEntries {
		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			continue
		}
		scores = append(scores, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read score file: %w", err)
	}
	return topN(scores), nil
}

// SaveScore inserts the score, keeps the top MaxEntries and rewrites the file
// The write goes through a temp file in the same directory and a rename
func (s *FileStore) SaveScore(ctx context.Context, e Entry) error {
	scores, err := s.LoadTopScores(ctx)
	if err != nil {
		return err
	}
	scores = topN(append(scores, e.Score))

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp score file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, v := range scores {
		fmt.Fprintln(w, v)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write score file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close score file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace score file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
