package services

// DefaultPageSize is the number of rows shown per catalog page.
const DefaultPageSize = 20

// maxVisiblePages bounds the page picker.
const maxVisiblePages = 5

// Page is one window of a paginated result.
type Page[T any] struct {
	Items       []T
	WindowStart int
	CurrentPage int
	PageSize    int
	TotalPages  int
	TotalItems  int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.CurrentPage > 1 && p.TotalPages > 0
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Paginate cuts the window for page out of items. Pages below 1 are
// treated as 1; a page past the end yields an empty window starting after
// the last page. A pageSize
// below 1 uses DefaultPageSize. Items shares the backing array of items.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	n := len(items)
	totalPages := 0
	if n > 0 {
		totalPages = (n-1)/pageSize + 1
	}

	// Past the end the window starts right after the last page, which also
	// keeps huge page numbers from overflowing the multiplication.
	start := totalPages * pageSize
	window := items[:0:0]
	if page <= totalPages {
		start = (page - 1) * pageSize
		end := start + pageSize
		if end > n {
			end = n
		}
		window = items[start:end:end]
	}

	return Page[T]{
		Items:       window,
		WindowStart: start,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  n,
	}
}

// VisiblePages returns up to five page numbers to show in a page picker,
// keeping current centred where possible.
func VisiblePages(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	var first int
	switch {
	case totalPages <= maxVisiblePages:
		first = 1
	case current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - maxVisiblePages + 1
	default:
		first = current - 2
	}

	count := maxVisiblePages
	if totalPages < count {
		count = totalPages
	}
	pages := make([]int, count)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}
