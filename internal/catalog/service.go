// Package catalog turns filter/sort/pagination criteria into pages of
// games, with whole-result caching in front of the entity store.
package catalog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/luckydeck/lobby/internal/cache"
	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/store"
)

const (
	defaultPageSize = 24
	defaultMaxPage  = 100

	// Query results churn quickly relative to the catalog, so they get
	// a short TTL; point lookups ride the cache default.
	defaultQueryTTL = 30 * time.Second
)

// Options tunes paging limits and cache expiry.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	QueryTTL        time.Duration
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = defaultPageSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = defaultMaxPage
	}
	if o.QueryTTL <= 0 {
		o.QueryTTL = defaultQueryTTL
	}
	return o
}

// Service is the query engine over a catalog store.
type Service struct {
	store  *store.Store
	cache  *cache.Cache
	logger *slog.Logger
	opts   Options
}

// NewService creates a query engine.
func NewService(st *store.Store, c *cache.Cache, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, cache: c, logger: logger, opts: opts.withDefaults()}
}

// Query applies the criteria's filters, sort, and pagination and returns
// one page of results. Identical criteria within the TTL window return
// the identical cached page without recomputation.
func (s *Service) Query(criteria domain.Criteria) (*domain.Page, error) {
	criteria = s.normalize(criteria)
	key := criteriaKey(criteria)

	if cached, ok := s.cache.Get(key); ok {
		if page, ok := cached.(*domain.Page); ok {
			s.logger.Debug("query cache hit", "key", key)
			return page, nil
		}
	}

	if err := s.store.Initialize(); err != nil {
		return nil, err
	}

	candidates := s.store.Games()
	matched := applyFilters(candidates, criteria)
	sortGames(matched, criteria.Sort)
	page := paginate(matched, criteria.Page, criteria.PageSize)

	s.cache.Set(key, page, s.opts.QueryTTL)
	s.logger.Debug("query computed",
		"key", key, "candidates", len(candidates), "matched", len(matched), "page", criteria.Page)

	return page, nil
}

// GetByID resolves a single game.
func (s *Service) GetByID(id string) (domain.Game, bool) {
	return s.store.GetByID(id)
}

// GetByProvider returns a provider's games, cached under the games domain.
func (s *Service) GetByProvider(providerID string) []domain.Game {
	return s.cachedLookup(cache.Key(cache.DomainGames, "provider", providerID), func() []domain.Game {
		return s.store.GetByProvider(providerID)
	})
}

// GetByType returns all games of one type, cached under the games domain.
func (s *Service) GetByType(t domain.GameType) []domain.Game {
	return s.cachedLookup(cache.Key(cache.DomainGames, "type", string(t)), func() []domain.Game {
		return s.store.GetByType(t)
	})
}

// GetByTag returns all games carrying a tag, cached under the games domain.
func (s *Service) GetByTag(tag string) []domain.Game {
	key := cache.Key(cache.DomainGames, "tag", domain.NormalizeTag(tag))
	return s.cachedLookup(key, func() []domain.Game {
		return s.store.GetByTag(tag)
	})
}

// Providers lists all providers with recomputed game counts.
func (s *Service) Providers() []domain.Provider {
	return s.store.Providers()
}

// Tags lists all derived tags with usage counts.
func (s *Service) Tags() []domain.Tag {
	return s.store.Tags()
}

// ToggleFlag flips a boolean flag on a game and returns the new state.
// ok=false when the id or flag is unknown. Every cached result touching
// games or aggregates is invalidated.
func (s *Service) ToggleFlag(id string, flag domain.Flag) (newValue, ok bool) {
	g, found := s.store.GetByID(id)
	if !found {
		return false, false
	}

	newValue, ok = s.store.SetFlag(id, flag, !g.FlagValue(flag))
	if !ok {
		return false, false
	}

	s.cache.Invalidate(cache.DomainPrefix(cache.DomainGames))
	s.cache.Invalidate(cache.DomainPrefix(cache.DomainStats))
	s.logger.Info("toggled game flag", "id", id, "flag", flag, "value", newValue)

	return newValue, true
}

func (s *Service) cachedLookup(key string, fetch func() []domain.Game) []domain.Game {
	if cached, ok := s.cache.Get(key); ok {
		if games, ok := cached.([]domain.Game); ok {
			return games
		}
	}

	games := fetch()
	s.cache.Set(key, games, 0)
	return games
}

// normalize clamps user-input-adjacent fields to safe defaults instead
// of failing: malformed paging must not break navigation.
func (s *Service) normalize(c domain.Criteria) domain.Criteria {
	c.Query = strings.TrimSpace(c.Query)
	if c.Scope == "" {
		c.Scope = domain.ScopeAll
	}
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = s.opts.DefaultPageSize
	}
	if c.PageSize > s.opts.MaxPageSize {
		c.PageSize = s.opts.MaxPageSize
	}
	return c
}
