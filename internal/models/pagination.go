package models

// Pagination represents paginated response metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the page count for a total.
func NewPagination(page, size, total int) *Pagination {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total, TotalPages: pages}
}
