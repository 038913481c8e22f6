// Package storage holds the BestScoreStore implementations used by the
// commands.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/plus3/blockfit/internal/blockfit"
)

const fileName = "best.json"

var (
	_ blockfit.BestScoreStore = (*FileStore)(nil)
	_ blockfit.BestScoreStore = (*MemoryStore)(nil)
)

type record struct {
	Best int `json:"best"`
}

// FileStore keeps the best score in a small JSON file.
type FileStore struct {
	Path string
}

// DefaultPath is best.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "blockfit", fileName), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("decoding %s: %w", s.Path, err)
	}
	return max(r.Best, 0), nil
}

// Save writes through a temporary file so a crash never leaves a torn
// record behind.
func (s *FileStore) Save(ctx context.Context, best int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record{Best: best}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("saving best score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("saving best score: %w", err)
	}
	return nil
}

// MemoryStore keeps the best score for the lifetime of the process. The
// simulator shares one across games.
type MemoryStore struct {
	mu   sync.Mutex
	best int
}

func (s *MemoryStore) Load(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best, nil
}

func (s *MemoryStore) Save(ctx context.Context, best int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.best = best
	return nil
}
