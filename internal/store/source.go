package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/luckydeck/lobby/internal/domain"
)

// Snapshot is the denormalized source collection a Store initializes from.
// Providers may be empty, in which case they are derived from the games.
type Snapshot struct {
	Games     []domain.Game     `json:"games"`
	Providers []domain.Provider `json:"providers,omitempty"`
}

// Source supplies the static catalog collection. Implementations must be
// safe to call once; the store only loads on first access.
type Source interface {
	Load() (Snapshot, error)
}

// StaticSource serves an in-memory snapshot. Used by tests and embedded
// seed data.
type StaticSource struct {
	snapshot Snapshot
}

// NewStaticSource wraps games (and optional providers) as a Source.
func NewStaticSource(games []domain.Game, providers ...domain.Provider) *StaticSource {
	return &StaticSource{snapshot: Snapshot{Games: games, Providers: providers}}
}

func (s *StaticSource) Load() (Snapshot, error) {
	return s.snapshot, nil
}

// JSONSource reads a snapshot from a JSON file on disk.
type JSONSource struct {
	path string
}

// NewJSONSource creates a source backed by the JSON file at path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

func (s *JSONSource) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse catalog file %s: %w", s.path, err)
	}
	return snap, nil
}
