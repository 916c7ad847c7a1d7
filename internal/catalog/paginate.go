package catalog

import "github.com/luckydeck/lobby/internal/domain"

// paginate slices one 1-based page out of the matched set. A page past
// the end yields an empty slice with metadata that still adds up; that
// is not an error.
func paginate(matched []domain.Game, page, pageSize int) *domain.Page {
	total := len(matched)

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]domain.Game, end-start)
	copy(items, matched[start:end])

	return &domain.Page{
		Items: items,
		Pagination: domain.PageMeta{
			Page:        page,
			PageSize:    pageSize,
			Total:       total,
			TotalPages:  totalPages,
			HasMore:     page < totalPages,
			HasPrevious: page > 1,
			StartIndex:  start,
			EndIndex:    end,
		},
		TotalItems: total,
	}
}
