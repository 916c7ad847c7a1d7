// Package stats derives summary reports from the catalog store.
// Aggregates change slowly relative to individual games, so results are
// cached with a long TTL.
package stats

import (
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/luckydeck/lobby/internal/cache"
	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/store"
)

const defaultStatsTTL = 15 * time.Minute

// topProviderShare is the K in the snapshot's percentage-of-total
// provider breakdown.
const topProviderShare = 5

// GameRank pairs a game with its ranking metric.
type GameRank struct {
	Game      domain.Game `json:"game"`
	PlayCount int         `json:"playCount"`
}

// ProviderRank pairs a provider with its game count.
type ProviderRank struct {
	Provider  domain.Provider `json:"provider"`
	GameCount int             `json:"gameCount"`
}

// ProviderShare is a provider's slice of the whole catalog.
type ProviderShare struct {
	Provider domain.Provider `json:"provider"`
	Count    int             `json:"count"`
	Percent  float64         `json:"percent"`
}

// Snapshot is a point-in-time summary of the catalog.
type Snapshot struct {
	TotalGames     int                     `json:"totalGames"`
	TotalProviders int                     `json:"totalProviders"`
	TotalTags      int                     `json:"totalTags"`
	ByType         map[domain.GameType]int `json:"byType"`
	TopProviders   []ProviderShare         `json:"topProviders"`
	AverageRTP     float64                 `json:"averageRtp"`
}

// Reporter computes aggregate statistics over a catalog store.
type Reporter struct {
	store  *store.Store
	cache  *cache.Cache
	logger *slog.Logger
	ttl    time.Duration
}

// NewReporter creates a reporter. ttl<=0 selects the long default.
func NewReporter(st *store.Store, c *cache.Cache, ttl time.Duration, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &Reporter{store: st, cache: c, logger: logger, ttl: ttl}
}

// TopGames ranks games by descending play count, sliced to limit. Ties
// keep source order.
func (r *Reporter) TopGames(limit int) []GameRank {
	if limit <= 0 {
		return nil
	}

	key := cache.Key(cache.DomainStats, "top-games", strconv.Itoa(limit))
	if cached, ok := r.cache.Get(key); ok {
		if ranks, ok := cached.([]GameRank); ok {
			return ranks
		}
	}

	games := r.store.Games()
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].PlayCount > games[j].PlayCount
	})
	if limit > len(games) {
		limit = len(games)
	}

	ranks := make([]GameRank, limit)
	for i, g := range games[:limit] {
		ranks[i] = GameRank{Game: g, PlayCount: g.PlayCount}
	}

	r.cache.Set(key, ranks, r.ttl)
	return ranks
}

// TopProviders ranks providers by descending game count, sliced to
// limit. Ties keep source order.
func (r *Reporter) TopProviders(limit int) []ProviderRank {
	if limit <= 0 {
		return nil
	}

	key := cache.Key(cache.DomainStats, "top-providers", strconv.Itoa(limit))
	if cached, ok := r.cache.Get(key); ok {
		if ranks, ok := cached.([]ProviderRank); ok {
			return ranks
		}
	}

	providers := r.store.Providers()
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].GameCount > providers[j].GameCount
	})
	if limit > len(providers) {
		limit = len(providers)
	}

	ranks := make([]ProviderRank, limit)
	for i, p := range providers[:limit] {
		ranks[i] = ProviderRank{Provider: p, GameCount: p.GameCount}
	}

	r.cache.Set(key, ranks, r.ttl)
	return ranks
}

// StatsSnapshot returns catalog totals, per-type counts, and the top
// providers' percentage of the whole. An empty store yields zeros, not
// NaN or Inf.
func (r *Reporter) StatsSnapshot() Snapshot {
	key := cache.Key(cache.DomainStats, "snapshot")
	if cached, ok := r.cache.Get(key); ok {
		if snap, ok := cached.(Snapshot); ok {
			return snap
		}
	}

	games := r.store.Games()
	providers := r.store.Providers()

	snap := Snapshot{
		TotalGames:     len(games),
		TotalProviders: len(providers),
		TotalTags:      len(r.store.Tags()),
		ByType:         make(map[domain.GameType]int),
	}

	var rtpSum float64
	rtpCount := 0
	for _, g := range games {
		snap.ByType[g.Type]++
		if g.RTP != nil {
			rtpSum += *g.RTP
			rtpCount++
		}
	}
	if rtpCount > 0 {
		snap.AverageRTP = rtpSum / float64(rtpCount)
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].GameCount > providers[j].GameCount
	})
	top := topProviderShare
	if top > len(providers) {
		top = len(providers)
	}
	for _, p := range providers[:top] {
		share := ProviderShare{Provider: p, Count: p.GameCount}
		if snap.TotalGames > 0 {
			share.Percent = float64(p.GameCount) / float64(snap.TotalGames) * 100
		}
		snap.TopProviders = append(snap.TopProviders, share)
	}

	r.cache.Set(key, snap, r.ttl)
	r.logger.Debug("computed stats snapshot", "games", snap.TotalGames, "providers", snap.TotalProviders)

	return snap
}
