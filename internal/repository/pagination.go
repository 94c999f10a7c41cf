package repository

// DefaultPerPage is the fixed page size for all listings.
const DefaultPerPage = 10

// PageMeta describes a page of results for the presentation layer.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	LastPage    int   `json:"last_page"`
	Total       int64 `json:"total"`
}

func pageMeta(page int, total int64) PageMeta {
	last := int((total + DefaultPerPage - 1) / DefaultPerPage)
	if last < 1 {
		last = 1
	}
	return PageMeta{
		CurrentPage: page,
		PerPage:     DefaultPerPage,
		LastPage:    last,
		Total:       total,
	}
}

func offset(page int) int {
	return (page - 1) * DefaultPerPage
}
