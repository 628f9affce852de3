package listing

import "fmt"

// Reduce applies intent to state and returns the next state. The input is
// never modified. Any intent that touches Filters sends the shopper back to
// page 1, since the old page number may not exist in the new result set.
// On error the input state is returned unchanged.
func Reduce(state State, intent Intent) (State, error) {
	next := state.clone()

	switch in := intent.(type) {
	case SetSort:
		next.SortBy = in.SortBy

	case SetSortOrder:
		if !in.Order.Valid() {
			return state, fmt.Errorf("%s %q: %w", in.Name(), in.Order, ErrInvalidSortOrder)
		}
		next.SortOrder = in.Order

	case SetPage:
		if in.Page < 1 {
			return state, fmt.Errorf("%s %d: %w", in.Name(), in.Page, ErrInvalidPage)
		}
		next.CurrentPage = in.Page

	case AddFilter:
		if in.Filter.Key == "" || in.Filter.Value == "" {
			return state, fmt.Errorf("%s: %w", in.Name(), ErrInvalidFilter)
		}
		if !next.HasFilter(in.Filter) {
			next.Filters = append(next.Filters, in.Filter)
		}
		next.CurrentPage = 1

	case RemoveFilter:
		kept := next.Filters[:0]
		for _, f := range next.Filters {
			if f != in.Filter {
				kept = append(kept, f)
			}
		}
		next.Filters = kept
		next.CurrentPage = 1

	case ClearFilters:
		next.Filters = []Filter{}
		next.CurrentPage = 1

	default:
		return state, fmt.Errorf("%T: %w", intent, ErrUnknownIntent)
	}

	return next, nil
}
