package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is the fixed name every export is written under; a new
// export replaces the previous one.
const DefaultFilename = "north-star-roadmap.svg"

// Saver writes finished documents into a directory.
type Saver struct {
	dir string
}

// NewSaver returns a saver rooted at dir.
func NewSaver(dir string) *Saver {
	return &Saver{dir: strings.TrimSpace(dir)}
}

// Dir returns the directory exports land in.
func (s *Saver) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Path returns the full path of the export file.
func (s *Saver) Path() string {
	return filepath.Join(s.Dir(), DefaultFilename)
}

// Save writes doc to Path. The document is staged in a temporary file that is
// always closed, and removed unless it was renamed into place.
func (s *Saver) Save(doc []byte) (string, error) {
	if s == nil || s.dir == "" {
		return "", fmt.Errorf("export: output directory is required")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: ensure output dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".roadmap-export-*.svg")
	if err != nil {
		return "", fmt.Errorf("export: stage document: %w", err)
	}
	staged := tmp.Name()
	closed, committed := false, false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if !committed {
			_ = os.Remove(staged)
		}
	}()

	if _, err := tmp.Write(doc); err != nil {
		return "", fmt.Errorf("export: write document: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("export: set document mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("export: sync document: %w", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close staged document: %w", err)
	}
	target := s.Path()
	if err := os.Rename(staged, target); err != nil {
		return "", fmt.Errorf("export: move document into place: %w", err)
	}
	committed = true
	return target, nil
}
