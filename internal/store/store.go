package store

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/luckydeck/lobby/internal/domain"
)

// Store owns the canonical game collection and its derived indices.
// All indices are rebuilt wholesale from the Source on first access;
// there is no incremental migration and no deletion path.
//
// Games are stored by value and replaced whole on mutation, so a reader
// holding a Game sees either the pre- or post-mutation state, never a
// torn one.
type Store struct {
	source Source
	logger *slog.Logger

	mu          sync.RWMutex
	initialized bool
	initErr     error

	games map[string]domain.Game
	order []string // source input order, drives stable tie-breaks

	byProvider map[string][]string
	byType     map[domain.GameType][]string
	byTag      map[string][]string // normalized tag -> game ids
	tagsByGame map[string][]string // game id -> normalized tags

	providers     map[string]domain.Provider
	providerOrder []string
	tags          map[string]domain.Tag
}

// New creates a store backed by source. Nothing is loaded until the
// first access.
func New(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{source: source, logger: logger}
}

// Initialize loads the source collection and builds every index in a
// single pass. Idempotent: repeat calls (including the implicit guard in
// every lookup) are no-ops once the initialized flag is set.
func (s *Store) Initialize() error {
	s.mu.RLock()
	if s.initialized {
		err := s.initErr
		s.mu.RUnlock()
		return err
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return s.initErr
	}

	s.initErr = s.build()
	s.initialized = true

	if s.initErr != nil {
		s.logger.Error("failed to initialize catalog store", "error", s.initErr)
	} else {
		s.logger.Info("catalog store initialized",
			"games", len(s.games), "providers", len(s.providers), "tags", len(s.tags))
	}
	return s.initErr
}

// build populates the id map and all secondary indices. Caller holds the
// write lock.
func (s *Store) build() error {
	snap, err := s.source.Load()
	if err != nil {
		return err
	}

	s.games = make(map[string]domain.Game, len(snap.Games))
	s.order = make([]string, 0, len(snap.Games))
	s.byProvider = make(map[string][]string)
	s.byType = make(map[domain.GameType][]string)
	s.byTag = make(map[string][]string)
	s.tagsByGame = make(map[string][]string)
	s.providers = make(map[string]domain.Provider)
	s.providerOrder = nil
	s.tags = make(map[string]domain.Tag)

	for _, p := range snap.Providers {
		if _, ok := s.providers[p.ID]; !ok {
			s.providers[p.ID] = p
			s.providerOrder = append(s.providerOrder, p.ID)
		}
	}

	for _, g := range snap.Games {
		if g.ID == "" {
			return fmt.Errorf("%w: empty id (title %q)", domain.ErrInvalidGame, g.Title)
		}
		if _, exists := s.games[g.ID]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, g.ID)
		}
		if g.RTP != nil && (*g.RTP < 0 || *g.RTP > 100) {
			return fmt.Errorf("%w: %s rtp %.2f out of range", domain.ErrInvalidGame, g.ID, *g.RTP)
		}

		s.games[g.ID] = g
		s.order = append(s.order, g.ID)

		s.byProvider[g.Provider.ID] = append(s.byProvider[g.Provider.ID], g.ID)
		s.byType[g.Type] = append(s.byType[g.Type], g.ID)

		if _, ok := s.providers[g.Provider.ID]; !ok {
			s.providers[g.Provider.ID] = domain.Provider{ID: g.Provider.ID, Name: g.Provider.Name}
			s.providerOrder = append(s.providerOrder, g.Provider.ID)
		}

		s.indexTags(g)
	}

	return nil
}

// indexTags records a game's tags, collapsing duplicates that differ
// only by case or whitespace. Caller holds the write lock.
func (s *Store) indexTags(g domain.Game) {
	seen := make(map[string]bool, len(g.Tags))
	for _, raw := range g.Tags {
		key := domain.NormalizeTag(raw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		s.byTag[key] = append(s.byTag[key], g.ID)
		s.tagsByGame[g.ID] = append(s.tagsByGame[g.ID], key)

		tag, ok := s.tags[key]
		if !ok {
			tag = domain.Tag{
				Key:      key,
				Name:     strings.TrimSpace(raw),
				Category: domain.ClassifyTag(raw),
			}
		}
		tag.Count++
		s.tags[key] = tag
	}
}

// ensure runs the initialize-if-needed guard. Lookups degrade to empty
// results when the source failed; the host surfaces that via Initialize.
func (s *Store) ensure() bool {
	return s.Initialize() == nil
}

// GetByID returns the game with the given id.
func (s *Store) GetByID(id string) (domain.Game, bool) {
	if !s.ensure() {
		return domain.Game{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	return g, ok
}

// GetByProvider returns all games from one provider, in source order.
func (s *Store) GetByProvider(providerID string) []domain.Game {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.byProvider[providerID])
}

// GetByType returns all games of one type, in source order.
func (s *Store) GetByType(t domain.GameType) []domain.Game {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.byType[t])
}

// GetByTag returns all games carrying the tag (matched on the
// normalized key), in source order.
func (s *Store) GetByTag(tag string) []domain.Game {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.byTag[domain.NormalizeTag(tag)])
}

// TagsForGame returns the normalized tag keys indexed for a game.
func (s *Store) TagsForGame(id string) []string {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.tagsByGame[id]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Games returns the full collection in source order.
func (s *Store) Games() []domain.Game {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.order)
}

// Len returns the number of games in the store.
func (s *Store) Len() int {
	if !s.ensure() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Providers returns all known providers with game counts recomputed
// from the index.
func (s *Store) Providers() []domain.Provider {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Provider, 0, len(s.providerOrder))
	for _, id := range s.providerOrder {
		p := s.providers[id]
		p.GameCount = len(s.byProvider[id])
		out = append(out, p)
	}
	return out
}

// Tags returns all derived tags, most used first. Equal counts keep
// alphabetical key order so output is deterministic.
func (s *Store) Tags() []domain.Tag {
	if !s.ensure() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SetFlag sets a boolean flag on a game via copy-and-replace and returns
// the new value. An unknown id or flag name is reported with ok=false,
// not an error: missing entries are routine in a filtering UI.
// Cache invalidation is the caller's responsibility.
func (s *Store) SetFlag(id string, flag domain.Flag, value bool) (newValue, ok bool) {
	if !s.ensure() || !flag.Valid() {
		return false, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.games[id]
	if !exists {
		return false, false
	}

	s.games[id] = g.WithFlag(flag, value)
	return value, true
}

// resolve maps ids back to games, skipping any id that no longer
// resolves. Caller holds at least the read lock.
func (s *Store) resolve(ids []string) []domain.Game {
	out := make([]domain.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.games[id]; ok {
			out = append(out, g)
		}
	}
	return out
}
