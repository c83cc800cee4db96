package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives the page count, never reporting fewer than one page.
func NewPagination(page, size, total int) *Pagination {
	pages := 1
	if size > 0 && total > 0 {
		pages = (total + size - 1) / size
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total, TotalPages: pages}
}
