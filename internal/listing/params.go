package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	paramSortBy    = "sortBy"
	paramSortOrder = "sortOrder"
	paramPage      = "page"
	paramFilter    = "filter"
)

// ParseState reads a state from URL parameters:
// sortBy, sortOrder, page and repeated filter=key:value.
// Missing parameters take their defaults.
func ParseState(values url.Values) (State, error) {
	state := NewState()
	state.SortBy = values.Get(paramSortBy)

	if raw := values.Get(paramSortOrder); raw != "" {
		order := SortOrder(strings.ToLower(raw))
		if !order.Valid() {
			return NewState(), fmt.Errorf("%s %q: %w", paramSortOrder, raw, ErrInvalidSortOrder)
		}
		state.SortOrder = order
	}

	if raw := values.Get(paramPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return NewState(), fmt.Errorf("%s %q: %w", paramPage, raw, ErrInvalidPage)
		}
		state.CurrentPage = page
	}

	for _, raw := range values[paramFilter] {
		key, value, ok := strings.Cut(raw, ":")
		if !ok || key == "" || value == "" {
			return NewState(), fmt.Errorf("%s %q: %w", paramFilter, raw, ErrInvalidFilter)
		}
		f := Filter{Key: key, Value: value}
		if !state.HasFilter(f) {
			state.Filters = append(state.Filters, f)
		}
	}

	return state, nil
}

// Values is the inverse of ParseState.
func (s State) Values() url.Values {
	values := url.Values{}
	if s.SortBy != "" {
		values.Set(paramSortBy, s.SortBy)
	}
	if s.SortOrder != "" {
		values.Set(paramSortOrder, string(s.SortOrder))
	}
	if s.CurrentPage > 0 {
		values.Set(paramPage, strconv.Itoa(s.CurrentPage))
	}
	for _, f := range s.Filters {
		values.Add(paramFilter, f.Key+":"+f.Value)
	}
	return values
}
