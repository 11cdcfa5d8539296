package store

import "workorder-service/internal/model"

// PageRequest selects one zero-based page of a search.
type PageRequest struct {
	Page int
	Size int
	Sort SortSpec
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a search result plus the totals of the whole result.
type Page struct {
	Servers       []model.Server
	TotalPages    int
	TotalElements int64
}

func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
