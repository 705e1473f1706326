package round

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the latest record in data/recent_play.json.
type FileStore[F cmp.Ordered] struct {
	mu      sync.Mutex
	dataDir string
}

func NewFileStore[F cmp.Ordered](dataDir string) *FileStore[F] {
	if dataDir == "" {
		dataDir = "data"
	}
	return &FileStore[F]{dataDir: dataDir}
}

func (s *FileStore[F]) path() string {
	return filepath.Join(s.dataDir, "recent_play.json")
}

func (s *FileStore[F]) ensureDir() error {
	return os.MkdirAll(s.dataDir, 0755)
}

// Save replaces the file atomically through a temp file and rename.
func (s *FileStore[F]) Save(_ context.Context, r *Record[F]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func (s *FileStore[F]) Latest(_ context.Context) (*Record[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var r Record[F]
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
