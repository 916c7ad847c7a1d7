// Package search provides typeahead suggestions and ranked title search
// over the catalog. Criteria filtering in the query engine stays plain
// substring matching; the fuzzy paths here only feed the search box.
package search

import (
	"log/slog"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/store"
)

// SuggestionKind tells the UI what a suggestion points at.
type SuggestionKind string

const (
	KindGame     SuggestionKind = "game"
	KindProvider SuggestionKind = "provider"
	KindTag      SuggestionKind = "tag"
)

// Suggestion is one typeahead hit with highlight metadata.
type Suggestion struct {
	Kind           SuggestionKind `json:"kind"`
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Score          int            `json:"score"`
	MatchedIndexes []int          `json:"matchedIndexes,omitempty"`
}

// suggestEntry is one indexed candidate.
type suggestEntry struct {
	kind  SuggestionKind
	id    string
	title string
}

// suggestIndex implements fuzzy.Source so matching runs without
// per-query allocation of the candidate list.
type suggestIndex struct {
	entries     []suggestEntry
	lowerTitles []string
}

func (idx *suggestIndex) String(i int) string { return idx.lowerTitles[i] }
func (idx *suggestIndex) Len() int            { return len(idx.entries) }

// Service answers typeahead and ranked search requests from the store's
// titles, provider names, and tag display names. The index builds once
// on first use; ReIndex rebuilds it after catalog changes.
type Service struct {
	store  *store.Store
	logger *slog.Logger

	index *suggestIndex
}

// NewService creates a search service over the store.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// Suggest returns up to limit typeahead suggestions for the query,
// best matches first, with matched character positions for highlighting.
func (s *Service) Suggest(query string, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	idx := s.ensureIndex()
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		e := idx.entries[m.Index]
		out[i] = Suggestion{
			Kind:           e.kind,
			ID:             e.id,
			Title:          e.title,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}

	s.logger.Debug("suggest", "query", query, "results", len(out))
	return out
}

// RankTitles performs a plain ranked fuzzy search over game titles and
// returns the matching games, best first.
func (s *Service) RankTitles(query string) []domain.Game {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	games := s.store.Games()
	titles := make([]string, len(games))
	for i, g := range games {
		titles[i] = g.Title
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	out := make([]domain.Game, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, games[r.OriginalIndex])
	}
	return out
}

// ReIndex drops the suggestion index so the next query rebuilds it.
func (s *Service) ReIndex() {
	s.index = nil
}

func (s *Service) ensureIndex() *suggestIndex {
	if s.index != nil {
		return s.index
	}

	idx := &suggestIndex{}
	add := func(kind SuggestionKind, id, title string) {
		idx.entries = append(idx.entries, suggestEntry{kind: kind, id: id, title: title})
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(title))
	}

	for _, g := range s.store.Games() {
		add(KindGame, g.ID, g.Title)
	}
	for _, p := range s.store.Providers() {
		add(KindProvider, p.ID, p.Name)
	}
	for _, t := range s.store.Tags() {
		add(KindTag, t.Key, t.Name)
	}

	s.index = idx
	s.logger.Debug("built suggestion index", "entries", idx.Len())
	return idx
}
