package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luckydeck/lobby/internal/cache"
	"github.com/luckydeck/lobby/internal/domain"
)

// criteriaKey derives a deterministic cache key from normalized
// criteria. List fields are sorted copies so logically identical
// criteria serialize identically regardless of slice order (filters
// compose by AND, so order never affects the result set).
func criteriaKey(c domain.Criteria) string {
	var segs []string

	if c.Query != "" {
		segs = append(segs, "q="+strings.ToLower(c.Query), "scope="+string(c.Scope))
	}
	if len(c.Providers) > 0 {
		segs = append(segs, "providers="+sortedJoin(c.Providers))
	}
	if len(c.Types) > 0 {
		types := make([]string, len(c.Types))
		for i, t := range c.Types {
			types[i] = string(t)
		}
		segs = append(segs, "types="+sortedJoin(types))
	}
	if len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = domain.NormalizeTag(t)
		}
		segs = append(segs, "tags="+sortedJoin(tags))
	}
	if c.Favorites {
		segs = append(segs, "favorites")
	}
	if c.New {
		segs = append(segs, "new")
	}
	if c.Hot {
		segs = append(segs, "hot")
	}
	if c.ComingSoon {
		segs = append(segs, "coming_soon")
	}
	if c.MinRTP != nil {
		segs = append(segs, fmt.Sprintf("minRtp=%.2f", *c.MinRTP))
	}
	if c.MaxRTP != nil {
		segs = append(segs, fmt.Sprintf("maxRtp=%.2f", *c.MaxRTP))
	}
	if c.Sort != "" {
		segs = append(segs, "sort="+string(c.Sort))
	}
	segs = append(segs, fmt.Sprintf("page=%d", c.Page), fmt.Sprintf("size=%d", c.PageSize))

	return cache.Key(cache.DomainGames, "query", strings.Join(segs, "&"))
}

func sortedJoin(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
