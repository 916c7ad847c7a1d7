package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckydeck/lobby/internal/cache"
	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/log"
	"github.com/luckydeck/lobby/internal/store"
)

func rtp(v float64) *float64 { return &v }

// scenarioGames mirrors the canonical three-game filtering scenario.
func scenarioGames() []domain.Game {
	return []domain.Game{
		{
			ID: "1", Title: "Sun Quest", Type: domain.GameTypeSlots,
			Provider:  domain.Provider{ID: "p1", Name: "Nova Play"},
			Tags:      []string{"hot"},
			PlayCount: 500, RTP: rtp(96),
			ReleasedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Title: "Royal Baccarat", Type: domain.GameTypeTable,
			Provider:  domain.Provider{ID: "p1", Name: "Nova Play"},
			PlayCount: 300, RTP: rtp(92),
			ReleasedAt: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "3", Title: "Star Cascade", Type: domain.GameTypeSlots,
			Provider:  domain.Provider{ID: "p2", Name: "Spinwright"},
			Tags:      []string{"hot", "new"},
			PlayCount: 800, RTP: rtp(98),
			ReleasedAt: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newTestService(t *testing.T, games []domain.Game) (*Service, *cache.Cache) {
	t.Helper()
	st := store.New(store.NewStaticSource(games), log.NullLogger())
	c := cache.New(time.Minute, log.NullLogger())
	svc := NewService(st, c, Options{
		DefaultPageSize: 10,
		MaxPageSize:     50,
		QueryTTL:        30 * time.Second,
	}, log.NullLogger())
	return svc, c
}

func queryIDs(t *testing.T, svc *Service, c domain.Criteria) []string {
	t.Helper()
	page, err := svc.Query(c)
	require.NoError(t, err)
	return idsOf(page.Items)
}

func idsOf(games []domain.Game) []string {
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

func TestQuery_EndToEndScenario(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	page, err := svc.Query(domain.Criteria{
		Types:  []domain.GameType{domain.GameTypeSlots},
		MinRTP: rtp(95),
		Sort:   domain.SortRating,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "1"}, idsOf(page.Items))
	assert.Equal(t, 2, page.Pagination.Total)
	assert.Equal(t, 2, page.TotalItems)
}

func TestQuery_FilterCompositionIsOrderIndependent(t *testing.T) {
	games := scenarioGames()

	typeFirst := applyFilters(
		applyFilters(games, domain.Criteria{Types: []domain.GameType{domain.GameTypeSlots}}),
		domain.Criteria{Providers: []string{"p1"}},
	)
	providerFirst := applyFilters(
		applyFilters(games, domain.Criteria{Providers: []string{"p1"}}),
		domain.Criteria{Types: []domain.GameType{domain.GameTypeSlots}},
	)

	assert.Equal(t, idsOf(typeFirst), idsOf(providerFirst))
	assert.Equal(t, []string{"1"}, idsOf(typeFirst))
}

func TestQuery_RangePolicyExcludesMissingRTP(t *testing.T) {
	games := scenarioGames()
	games = append(games, domain.Game{
		ID: "4", Title: "Mystery Spin", Type: domain.GameTypeSlots,
		Provider: domain.Provider{ID: "p2", Name: "Spinwright"},
	})
	svc, _ := newTestService(t, games)

	// No bounds: the RTP-less game is included
	all := queryIDs(t, svc, domain.Criteria{})
	assert.Contains(t, all, "4")

	// Any single bound excludes it
	withMin := queryIDs(t, svc, domain.Criteria{MinRTP: rtp(0)})
	assert.NotContains(t, withMin, "4")

	withMax := queryIDs(t, svc, domain.Criteria{MaxRTP: rtp(100)})
	assert.NotContains(t, withMax, "4")
}

func TestQuery_PaginationArithmetic(t *testing.T) {
	games := make([]domain.Game, 25)
	for i := range games {
		games[i] = domain.Game{
			ID:       fmt.Sprintf("g%02d", i+1),
			Title:    fmt.Sprintf("Game %02d", i+1),
			Type:     domain.GameTypeSlots,
			Provider: domain.Provider{ID: "p1", Name: "Nova Play"},
		}
	}
	svc, _ := newTestService(t, games)

	page1, err := svc.Query(domain.Criteria{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.False(t, page1.Pagination.HasPrevious)
	assert.True(t, page1.Pagination.HasMore)
	assert.Equal(t, 0, page1.Pagination.StartIndex)
	assert.Equal(t, 10, page1.Pagination.EndIndex)

	page3, err := svc.Query(domain.Criteria{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.Pagination.HasMore)
	assert.True(t, page3.Pagination.HasPrevious)
	assert.Equal(t, 20, page3.Pagination.StartIndex)
	assert.Equal(t, 25, page3.Pagination.EndIndex)

	// Beyond range: empty slice, consistent metadata, no error
	page4, err := svc.Query(domain.Criteria{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 25, page4.Pagination.Total)
	assert.False(t, page4.Pagination.HasMore)
	assert.True(t, page4.Pagination.HasPrevious)
	assert.Equal(t, page4.Pagination.StartIndex, page4.Pagination.EndIndex)
}

func TestQuery_MalformedPagingNormalized(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	page, err := svc.Query(domain.Criteria{Page: -2, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 10, page.Pagination.PageSize)

	page, err = svc.Query(domain.Criteria{Page: 1, PageSize: 9000})
	require.NoError(t, err)
	assert.Equal(t, 50, page.Pagination.PageSize, "page size clamped to the configured max")
}

func TestQuery_TitleSortIsStable(t *testing.T) {
	games := []domain.Game{
		{ID: "a", Title: "Beta", Type: domain.GameTypeSlots, Provider: domain.Provider{ID: "p1"}},
		{ID: "b", Title: "Alpha", Type: domain.GameTypeSlots, Provider: domain.Provider{ID: "p1"}},
		{ID: "c", Title: "Alpha", Type: domain.GameTypeSlots, Provider: domain.Provider{ID: "p1"}},
	}
	svc, _ := newTestService(t, games)

	got := queryIDs(t, svc, domain.Criteria{Sort: domain.SortTitleAsc})
	assert.Equal(t, []string{"b", "c", "a"}, got, "equal titles keep source order")

	got = queryIDs(t, svc, domain.Criteria{Sort: domain.SortTitleDesc})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestQuery_SortKeys(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	assert.Equal(t, []string{"3", "1", "2"}, queryIDs(t, svc, domain.Criteria{Sort: domain.SortPopular}))
	assert.Equal(t, []string{"3", "1", "2"}, queryIDs(t, svc, domain.Criteria{Sort: domain.SortNewest}))
	assert.Equal(t, []string{"3", "1", "2"}, queryIDs(t, svc, domain.Criteria{Sort: domain.SortRating}))

	// Unknown sort key passes the source order through
	assert.Equal(t, []string{"1", "2", "3"}, queryIDs(t, svc, domain.Criteria{Sort: domain.SortKey("zigzag")}))
}

func TestQuery_RatingSortPlacesUnratedLast(t *testing.T) {
	games := scenarioGames()
	games = append(games, domain.Game{
		ID: "4", Title: "Mystery Spin", Type: domain.GameTypeSlots,
		Provider: domain.Provider{ID: "p2"},
	})
	svc, _ := newTestService(t, games)

	got := queryIDs(t, svc, domain.Criteria{Sort: domain.SortRating})
	assert.Equal(t, []string{"3", "1", "2", "4"}, got)
}

func TestQuery_SearchScopes(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	assert.Equal(t, []string{"1"}, queryIDs(t, svc, domain.Criteria{Query: "sun", Scope: domain.ScopeTitle}))
	assert.Equal(t, []string{"1", "2"}, queryIDs(t, svc, domain.Criteria{Query: "nova", Scope: domain.ScopeProvider}))
	assert.Equal(t, []string{"3"}, queryIDs(t, svc, domain.Criteria{Query: "new", Scope: domain.ScopeTag}))

	// Default scope matches any field
	assert.Equal(t, []string{"1", "3"}, queryIDs(t, svc, domain.Criteria{Query: "hot"}))
}

func TestQuery_TagFilterMatchesSubstring(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	assert.Equal(t, []string{"1", "3"}, queryIDs(t, svc, domain.Criteria{Tags: []string{"HO"}}))
	assert.Empty(t, queryIDs(t, svc, domain.Criteria{Tags: []string{"frozen"}}))
}

func TestQuery_IdenticalCriteriaReturnCachedPage(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	criteria := domain.Criteria{Types: []domain.GameType{domain.GameTypeSlots}, Sort: domain.SortRating}

	first, err := svc.Query(criteria)
	require.NoError(t, err)
	second, err := svc.Query(criteria)
	require.NoError(t, err)

	assert.Same(t, first, second, "identical criteria within the TTL hit the cached page")
}

func TestQuery_CriteriaKeyIgnoresListOrder(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	first, err := svc.Query(domain.Criteria{Providers: []string{"p1", "p2"}})
	require.NoError(t, err)
	second, err := svc.Query(domain.Criteria{Providers: []string{"p2", "p1"}})
	require.NoError(t, err)

	assert.Same(t, first, second, "list order never changes an AND-composed result")
}

func TestToggleFlag_InvalidatesQueryCache(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	favorites := domain.Criteria{Favorites: true}
	assert.Empty(t, queryIDs(t, svc, favorites))

	value, ok := svc.ToggleFlag("1", domain.FlagFavorite)
	require.True(t, ok)
	assert.True(t, value)

	assert.Equal(t, []string{"1"}, queryIDs(t, svc, favorites),
		"cached favorites page was invalidated by the mutation")

	value, ok = svc.ToggleFlag("1", domain.FlagFavorite)
	require.True(t, ok)
	assert.False(t, value)
}

func TestToggleFlag_UnknownID(t *testing.T) {
	svc, _ := newTestService(t, scenarioGames())

	_, ok := svc.ToggleFlag("missing", domain.FlagFavorite)
	assert.False(t, ok)
}

func TestPointLookups(t *testing.T) {
	svc, c := newTestService(t, scenarioGames())

	g, ok := svc.GetByID("2")
	require.True(t, ok)
	assert.Equal(t, "Royal Baccarat", g.Title)

	assert.Equal(t, []string{"1", "2"}, idsOf(svc.GetByProvider("p1")))
	assert.Equal(t, []string{"1", "3"}, idsOf(svc.GetByType(domain.GameTypeSlots)))
	assert.Equal(t, []string{"1", "3"}, idsOf(svc.GetByTag("HOT")))

	// List lookups land in the games cache domain
	_, ok = c.Get(cache.Key(cache.DomainGames, "provider", "p1"))
	assert.True(t, ok)

	// Unknown keys come back empty, not as errors
	assert.Empty(t, svc.GetByProvider("nope"))
	assert.Empty(t, svc.GetByTag("nope"))
}

func TestCriteriaKey_Deterministic(t *testing.T) {
	a := domain.Criteria{
		Query: "Sun", Scope: domain.ScopeAll,
		Providers: []string{"p2", "p1"},
		Tags:      []string{" Hot ", "NEW"},
		MinRTP:    rtp(90),
		Sort:      domain.SortPopular,
		Page:      1, PageSize: 10,
	}
	b := domain.Criteria{
		Query: "Sun", Scope: domain.ScopeAll,
		Providers: []string{"p1", "p2"},
		Tags:      []string{"new", "hot"},
		MinRTP:    rtp(90),
		Sort:      domain.SortPopular,
		Page:      1, PageSize: 10,
	}

	assert.Equal(t, criteriaKey(a), criteriaKey(b))
	assert.NotEqual(t, criteriaKey(a), criteriaKey(domain.Criteria{Page: 2, PageSize: 10}))
}
