package search

// DefaultPageSize is the number of results shown per page
const DefaultPageSize = 10

// Pagination is a view window over a result list
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	PageSize   int `json:"page_size"`
	Start      int `json:"start"`
	End        int `json:"end"`
}

// Paginate clamps page into [1, max(1, ceil(count/size))] and returns the
// half-open window [Start, End) into the result list.
func Paginate(count, page, size int) Pagination {
	if size < 1 {
		size = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}

	totalPages := (count + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := start + size
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		PageSize:   size,
		Start:      start,
		End:        end,
	}
}

// ClampPage clamps page into [1, totalPages]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
