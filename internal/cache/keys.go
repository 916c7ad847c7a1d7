package cache

import "strings"

// Separator delimits cache key segments.
const Separator = ":"

// Cache key domains. Keys are built domain:scope:variant so that
// invalidating a domain (or a domain+scope) has a predictable blast
// radius.
const (
	// DomainGames covers query results and point lookups over games
	DomainGames = "games"

	// DomainStats covers aggregate reports
	DomainStats = "stats"
)

// Key builds a hierarchical cache key from a domain, a scope, and
// optional variant segments.
func Key(domain, scope string, variants ...string) string {
	parts := make([]string, 0, 2+len(variants))
	parts = append(parts, domain, scope)
	parts = append(parts, variants...)
	return strings.Join(parts, Separator)
}

// DomainPrefix returns the invalidation fragment that matches every key
// in a domain.
func DomainPrefix(domain string) string {
	return domain + Separator
}
