package domain

import "math"

// MaxCitiesPageSize is the largest page size a city listing may request.
const MaxCitiesPageSize = 20

// PaginationMetadata describes a result window. It is derived per query
// and never persisted.
type PaginationMetadata struct {
	TotalItemCount int `json:"totalItemCount"`
	PageSize       int `json:"pageSize"`
	CurrentPage    int `json:"currentPage"`
	TotalPageCount int `json:"totalPageCount"`
}

// NewPaginationMetadata computes the metadata for a page of a filtered result set.
// TotalPageCount is ceil(totalItemCount / pageSize), or 0 when pageSize is not positive.
func NewPaginationMetadata(totalItemCount, pageSize, currentPage int) PaginationMetadata {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItemCount + pageSize - 1) / pageSize
	}

	return PaginationMetadata{
		TotalItemCount: totalItemCount,
		PageSize:       pageSize,
		CurrentPage:    currentPage,
		TotalPageCount: totalPages,
	}
}

// CityQuery holds the filters and window for a city listing.
// Name and SearchQuery are ignored when blank.
type CityQuery struct {
	Name        string
	SearchQuery string
	PageNumber  int
	PageSize    int
}

// Offset returns the number of items to skip for the requested page.
// It saturates at math.MaxInt, so a page number too large to address
// still lands past the end of any result set.
func (q CityQuery) Offset() int {
	if q.PageNumber < 1 || q.PageSize < 1 {
		return 0
	}
	if q.PageNumber-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return q.PageSize * (q.PageNumber - 1)
}

// Validate checks the window parameters. Filters need no validation.
func (q CityQuery) Validate() error {
	errs := &ValidationErrors{}
	if q.PageNumber < 1 {
		errs.Add("pageNumber", "must be at least 1")
	}
	if q.PageSize < 1 {
		errs.Add("pageSize", "must be at least 1")
	}
	return errs.ErrOrNil()
}
