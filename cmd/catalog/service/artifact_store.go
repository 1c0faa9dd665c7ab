package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/droidbay/catalog/common/logger"
	"github.com/google/uuid"
)

// ArtifactStore is filesystem-backed binary storage for APK files.
// Files are keyed by a sanitized name; the store owns existence checks and
// streamed retrieval. It knows nothing about catalog metadata.
type ArtifactStore struct {
	dir string
	log *logger.Logger
}

// NewArtifactStore creates the upload directory if needed
func NewArtifactStore(dir string, log *logger.Logger) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	log.Info("artifact store ready", "dir", dir)

	return &ArtifactStore{
		dir: dir,
		log: log,
	}, nil
}

// Save streams r into a file named name. The bytes land in a uniquely named
// temp file first and are renamed into place, so a failed write never leaves
// a partial artifact under the final name.
func (s *ArtifactStore) Save(name string, r io.Reader) error {
	tmp := filepath.Join(s.dir, ".upload-"+uuid.NewString())

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write artifact %s: %w", name, err)
	}

	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store artifact %s: %w", name, err)
	}

	s.log.Info("artifact stored", "name", name, "bytes", written)
	return nil
}

// Open returns a reader over a stored artifact
func (s *ArtifactStore) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", name, err)
	}
	return f, nil
}

// Exists reports whether a stored artifact is present
func (s *ArtifactStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// SanitizeFilename reduces a name to [A-Za-z0-9_.-], stripping any path
// components first. Runs of other characters collapse to a single
// underscore and leading/trailing "._-" are trimmed.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "._-")
}
