package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPerPage is the number of rows shown per list page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// PageInfo carries pagination metadata for rendering list views.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ParseSearch extracts the free-text search query from URL query values.
// Leading and trailing whitespace is dropped so " alpha " and "alpha"
// search the same thing.
func ParseSearch(q url.Values) string {
	return strings.TrimSpace(q.Get("search"))
}

// ParsePage extracts page and per_page from URL query values, with defaults
// applied for missing or out-of-range values.
func ParsePage(q url.Values) (page, perPage int) {
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(q.Get("per_page"))
	if !validPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Paginate computes pagination metadata for a list of total rows.
// PRE: none; out-of-range inputs are clamped
// POST: 1 <= Page <= TotalPages, TotalPages >= 1
func Paginate(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Window returns the slice of items on the current page.
func Window[T any](items []T, p PageInfo) []T {
	start := (p.Page - 1) * p.PerPage
	if start >= len(items) {
		return nil
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageNumbers returns at most 5 page numbers centered on the current page
// for pagination controls.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination reports whether pagination controls are worth rendering.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

func validPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
