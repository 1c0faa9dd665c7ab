package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/droidbay/catalog/common/logger"
	"github.com/google/uuid"
)

// FileStore persists each collection as <dir>/<collection>.json
type FileStore struct {
	dir string
	mu  sync.Mutex
	log *logger.Logger
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	log.Info("file store ready", "dir", dir)

	return &FileStore{
		dir: dir,
		log: log,
	}, nil
}

// Load reads a collection file into dest
func (s *FileStore) Load(ctx context.Context, collection string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		// Never-written collection loads as empty
		return json.Unmarshal([]byte("[]"), dest)
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}

	// A zero-byte file (interrupted external write) loads as empty too
	if len(bytes.TrimSpace(data)) == 0 {
		return json.Unmarshal([]byte("[]"), dest)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}

	return nil
}

// Replace overwrites a collection file with docs.
// The write goes to a uniquely named temp file first and is renamed into
// place, so a crash mid-write never leaves a truncated collection behind.
func (s *FileStore) Replace(ctx context.Context, collection string, docs any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	tmp := s.path(collection) + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}

	if err := os.Rename(tmp, s.path(collection)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}

	s.log.WithCollection(collection).Debug("collection replaced", "bytes", len(data))
	return nil
}

// Close closes the store (for interface compatibility)
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
