package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/luckydeck/lobby/internal/domain"
)

// sortGames orders games in place. Every sort is stable, so games that
// compare equal keep their source order. An unknown key leaves the
// pass-through order untouched.
func sortGames(games []domain.Game, key domain.SortKey) {
	switch key {
	case domain.SortPopular:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].PlayCount > games[j].PlayCount
		})

	case domain.SortNewest:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].ReleasedAt.After(games[j].ReleasedAt)
		})

	case domain.SortTitleAsc:
		c := titleCollator()
		sort.SliceStable(games, func(i, j int) bool {
			return c.CompareString(games[i].Title, games[j].Title) < 0
		})

	case domain.SortTitleDesc:
		c := titleCollator()
		sort.SliceStable(games, func(i, j int) bool {
			return c.CompareString(games[i].Title, games[j].Title) > 0
		})

	case domain.SortRating:
		sort.SliceStable(games, func(i, j int) bool {
			return ratingOf(games[i]) > ratingOf(games[j])
		})
	}
}

// titleCollator builds a case/diacritic-insensitive collator. Collators
// carry internal buffers, so each sort gets its own.
func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}

// ratingOf sorts games without a published RTP after every rated game.
func ratingOf(g domain.Game) float64 {
	if g.RTP == nil {
		return -1
	}
	return *g.RTP
}
