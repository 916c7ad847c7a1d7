package catalog

import (
	"strings"

	"github.com/luckydeck/lobby/internal/domain"
)

// predicate is a pure narrowing function over the candidate set.
// Predicates compose by logical AND, so their order never changes the
// result set.
type predicate func(domain.Game) bool

// applyFilters narrows games to those matching every active criterion.
// Input order is preserved.
func applyFilters(games []domain.Game, c domain.Criteria) []domain.Game {
	preds := buildPredicates(c)
	if len(preds) == 0 {
		out := make([]domain.Game, len(games))
		copy(out, games)
		return out
	}

	out := make([]domain.Game, 0, len(games))
outer:
	for _, g := range games {
		for _, p := range preds {
			if !p(g) {
				continue outer
			}
		}
		out = append(out, g)
	}
	return out
}

func buildPredicates(c domain.Criteria) []predicate {
	var preds []predicate

	if c.Query != "" {
		preds = append(preds, searchPredicate(c.Query, c.Scope))
	}
	if len(c.Providers) > 0 {
		preds = append(preds, providerPredicate(c.Providers))
	}
	if len(c.Types) > 0 {
		preds = append(preds, typePredicate(c.Types))
	}
	if len(c.Tags) > 0 {
		preds = append(preds, tagPredicate(c.Tags))
	}
	if c.Favorites {
		preds = append(preds, func(g domain.Game) bool { return g.IsFavorite })
	}
	if c.New {
		preds = append(preds, func(g domain.Game) bool { return g.IsNew })
	}
	if c.Hot {
		preds = append(preds, func(g domain.Game) bool { return g.IsHot })
	}
	if c.ComingSoon {
		preds = append(preds, func(g domain.Game) bool { return g.IsComingSoon })
	}
	if c.HasRTPRange() {
		preds = append(preds, rtpPredicate(c.MinRTP, c.MaxRTP))
	}

	return preds
}

func searchPredicate(query string, scope domain.SearchScope) predicate {
	q := strings.ToLower(query)

	matchTitle := func(g domain.Game) bool {
		return strings.Contains(strings.ToLower(g.Title), q)
	}
	matchProvider := func(g domain.Game) bool {
		return strings.Contains(strings.ToLower(g.Provider.Name), q)
	}
	matchTag := func(g domain.Game) bool {
		for _, t := range g.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	}

	switch scope {
	case domain.ScopeTitle:
		return matchTitle
	case domain.ScopeProvider:
		return matchProvider
	case domain.ScopeTag:
		return matchTag
	default:
		return func(g domain.Game) bool {
			return matchTitle(g) || matchProvider(g) || matchTag(g)
		}
	}
}

// providerPredicate matches games from any of the listed providers.
func providerPredicate(ids []string) predicate {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(g domain.Game) bool { return set[g.Provider.ID] }
}

// typePredicate matches games of any of the listed types.
func typePredicate(types []domain.GameType) predicate {
	set := make(map[domain.GameType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return func(g domain.Game) bool { return set[g.Type] }
}

// tagPredicate matches games where any listed tag is a case-insensitive
// substring of one of the game's tags.
func tagPredicate(tags []string) predicate {
	wanted := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			wanted = append(wanted, t)
		}
	}
	return func(g domain.Game) bool {
		for _, w := range wanted {
			for _, t := range g.Tags {
				if strings.Contains(strings.ToLower(t), w) {
					return true
				}
			}
		}
		return false
	}
}

// rtpPredicate requires the RTP attribute to be present whenever any
// bound is set; a half-open range still excludes games without one.
func rtpPredicate(min, max *float64) predicate {
	return func(g domain.Game) bool {
		if g.RTP == nil {
			return false
		}
		if min != nil && *g.RTP < *min {
			return false
		}
		if max != nil && *g.RTP > *max {
			return false
		}
		return true
	}
}
