// Package history keeps a local record of gate results per project.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/domain"
)

// Path is the history document, relative to the project root.
const Path = ".qualitygate/history/scores.json"

const defaultLimit = 500

// FileHistory implements domain.ScoreHistory as a JSON array, oldest first.
type FileHistory struct {
	store *report.JSONWriter
	limit int
}

func New() *FileHistory {
	return &FileHistory{store: report.NewJSONWriter(), limit: defaultLimit}
}

// WithLimit caps how many entries are kept. Older entries are dropped first.
func (h *FileHistory) WithLimit(n int) *FileHistory {
	if n > 0 {
		h.limit = n
	}
	return h
}

// Save appends entry. An unreadable history is left untouched and reported.
func (h *FileHistory) Save(projectPath string, entry domain.ScoreEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if over := len(entries) - h.limit; over > 0 {
		entries = entries[over:]
	}
	if err := h.store.Write(filepath.Join(projectPath, Path), entries); err != nil {
		return fmt.Errorf("saving score history: %w", err)
	}
	return nil
}

// Load returns nil when the project never recorded a result.
func (h *FileHistory) Load(projectPath string) ([]domain.ScoreEntry, error) {
	var entries []domain.ScoreEntry
	err := h.store.Read(filepath.Join(projectPath, Path), &entries)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("loading score history: %w", err)
	}
	return entries, nil
}
