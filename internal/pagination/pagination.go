package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	StartIndex  int   `json:"startIndex"`
	EndIndex    int   `json:"endIndex"`
}

// New computes the page window for a total row count. Pages past the end are
// not clamped; they describe an empty page.
func New(page, limit int, totalCount int64) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	endIndex := page * limit
	if int64(endIndex) > totalCount {
		endIndex = int(totalCount)
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		StartIndex:  (page-1)*limit + 1,
		EndIndex:    endIndex,
	}
}

func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.Limit
}
