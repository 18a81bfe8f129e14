package catalog

// DefaultPageSize is the number of projects shown per gallery page.
const DefaultPageSize = 6

// Page is one window of a filtered project list.
type Page struct {
	Items         []Project `json:"items"`
	Number        int       `json:"page"`
	Total         int       `json:"total_pages"`
	FilteredCount int       `json:"filtered_count"`
}

func (p Page) HasPrev() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.Total }

// PageCount is ceil(n/size). Zero items give zero pages.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampCursor moves cursor into [1, max(1, pages)].
func ClampCursor(cursor, pages int) int {
	if cursor > pages {
		cursor = pages
	}
	if cursor < 1 {
		cursor = 1
	}
	return cursor
}

// Paginate slices items into the page selected by cursor after clamping it.
func Paginate(items []Project, cursor, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := PageCount(len(items), size)
	cursor = ClampCursor(cursor, total)

	start := (cursor - 1) * size
	end := min(start+size, len(items))
	page := Page{
		Number:        cursor,
		Total:         total,
		FilteredCount: len(items),
		Items:         []Project{},
	}
	if start < end {
		page.Items = items[start:end]
	}
	return page
}
