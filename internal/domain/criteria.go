package domain

// SearchScope limits which fields a free-text query matches against.
type SearchScope string

const (
	ScopeAll      SearchScope = "all"
	ScopeTitle    SearchScope = "title"
	ScopeProvider SearchScope = "provider"
	ScopeTag      SearchScope = "tag"
)

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortPopular   SortKey = "popular" // descending play count
	SortNewest    SortKey = "newest"  // descending release date
	SortTitleAsc  SortKey = "title_asc"
	SortTitleDesc SortKey = "title_desc"
	SortRating    SortKey = "rating" // descending RTP
)

// Criteria describes a catalog query. Every field is optional; the zero
// value matches the whole catalog with default paging.
type Criteria struct {
	Query string      `json:"query,omitempty"`
	Scope SearchScope `json:"scope,omitempty"` // defaults to ScopeAll

	Providers []string   `json:"providers,omitempty"`
	Types     []GameType `json:"types,omitempty"`
	Tags      []string   `json:"tags,omitempty"` // case-insensitive substring match

	Favorites  bool `json:"favorites,omitempty"`
	New        bool `json:"new,omitempty"`
	Hot        bool `json:"hot,omitempty"`
	ComingSoon bool `json:"comingSoon,omitempty"`

	MinRTP *float64 `json:"minRtp,omitempty"`
	MaxRTP *float64 `json:"maxRtp,omitempty"`

	Sort     SortKey `json:"sort,omitempty"`
	Page     int     `json:"page,omitempty"` // 1-based
	PageSize int     `json:"pageSize,omitempty"`
}

// HasRTPRange reports whether any RTP bound is set. A half-open range
// still counts: games without an RTP are excluded once any bound exists.
func (c Criteria) HasRTPRange() bool {
	return c.MinRTP != nil || c.MaxRTP != nil
}

// PageMeta carries pagination bookkeeping alongside a result slice.
type PageMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
	HasPrevious bool `json:"hasPrevious"`
	StartIndex  int  `json:"startIndex"`
	EndIndex    int  `json:"endIndex"`
}

// Page is one page of query results plus metadata.
type Page struct {
	Items      []Game   `json:"items"`
	Pagination PageMeta `json:"pagination"`
	TotalItems int      `json:"totalItems"`
}
