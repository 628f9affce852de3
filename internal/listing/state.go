// Package listing holds the filter/sort/page state of a category listing
// and the reducer that moves it forward one intent at a time.
package listing

import "errors"

// SortOrder is the listing sort direction, asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

var (
	ErrInvalidPage      = errors.New("page must be 1 or greater")
	ErrInvalidSortOrder = errors.New("sort order must be asc or desc")
	ErrInvalidFilter    = errors.New("filter key and value are required")
	ErrUnknownIntent    = errors.New("unknown listing intent")
)

// Filter is one active facet selection.
type Filter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// State is the listing query a shopper has built up. Filters keep
// insertion order and never hold the same (Key, Value) twice.
type State struct {
	SortBy      string    `json:"sortBy"`
	SortOrder   SortOrder `json:"sortOrder"`
	CurrentPage int       `json:"currentPage"`
	Filters     []Filter  `json:"filters"`
}

// NewState returns the state a listing starts from.
func NewState() State {
	return State{
		SortBy:      "",
		SortOrder:   SortAsc,
		CurrentPage: 1,
		Filters:     []Filter{},
	}
}

// HasFilter reports whether f is already active.
func (s State) HasFilter(f Filter) bool {
	for _, existing := range s.Filters {
		if existing == f {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	filters := make([]Filter, len(s.Filters))
	copy(filters, s.Filters)
	s.Filters = filters
	return s
}
