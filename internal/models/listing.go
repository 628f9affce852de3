package models

type FilterItem struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	IsSelected bool   `json:"isSelected"`
}

// FilterSection is one facet of a listing as returned by the backend,
// with availability and selection already applied.
type FilterSection struct {
	Name  string       `json:"name"`
	Key   string       `json:"key"`
	Items []FilterItem `json:"items"`
}

// ListingResult is one page of a category listing. It is replaced whole
// on every fetch and never patched in place.
type ListingResult struct {
	Total       int             `json:"total"`
	CurrentPage int             `json:"currentPage"`
	Filters     []FilterSection `json:"filters"`
	Items       []Product       `json:"items"`
}
