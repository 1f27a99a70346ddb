package model

// Pagination describes a page window over an ordered result set.
// Total is the number of pages, not the number of items.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination computes pagination metadata for the given page, page size and
// total item count. totalItems of 0 yields total=0 and hasNext=hasPrev=false
// for page 1.
func NewPagination(page, limit int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Total:   totalPages,
		HasNext: page < totalPages,
		HasPrev: page > 1,
	}
}
