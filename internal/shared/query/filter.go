package query

import "github.com/orris-inc/tracker/internal/shared/constants"

// PageFilter is a 1-based page request.
type PageFilter struct {
	Page     int
	PageSize int
}

func NewPageFilter(page, pageSize int) PageFilter {
	return PageFilter{Page: page, PageSize: pageSize}
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return constants.DefaultPageSize
	}
	if f.PageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return f.PageSize
}

// CurrentPage returns the page number, clamped to 1.
func (f PageFilter) CurrentPage() int {
	if f.Page <= 0 {
		return 1
	}
	return f.Page
}
