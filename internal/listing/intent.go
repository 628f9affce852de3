package listing

// Intent is a shopper action on the listing. The unexported marker keeps
// the set closed to the types below; Reduce handles each of them.
type Intent interface {
	intent()
	// Name is the wire name of the intent, e.g. "ADD_FILTER".
	Name() string
}

// SetSort changes the sort field. The page is kept.
type SetSort struct {
	SortBy string
}

// SetSortOrder changes the sort direction. The page is kept.
type SetSortOrder struct {
	Order SortOrder
}

// SetPage moves to Page, which must be 1 or greater.
type SetPage struct {
	Page int
}

// AddFilter activates Filter unless already active and returns to page 1.
type AddFilter struct {
	Filter Filter
}

// RemoveFilter drops the filter with the same key and value and returns
// to page 1.
type RemoveFilter struct {
	Filter Filter
}

// ClearFilters drops every filter and returns to page 1.
type ClearFilters struct{}

func (SetSort) intent()      {}
func (SetSortOrder) intent() {}
func (SetPage) intent()      {}
func (AddFilter) intent()    {}
func (RemoveFilter) intent() {}
func (ClearFilters) intent() {}

func (SetSort) Name() string      { return "SET_SORT" }
func (SetSortOrder) Name() string { return "SET_SORT_ORDER" }
func (SetPage) Name() string      { return "SET_PAGE" }
func (AddFilter) Name() string    { return "ADD_FILTER" }
func (RemoveFilter) Name() string { return "REMOVE_FILTER" }
func (ClearFilters) Name() string { return "CLEAR_FILTERS" }
