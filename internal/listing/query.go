package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Session is the storefront configuration a query is built under. It is
// fixed when the session starts and passed in explicitly.
type Session struct {
	Currency string
	Language string
}

// Query is the outbound request for one page of results.
type Query struct {
	SortBy    string    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Page      int       `json:"page"`
	Filters   []Filter  `json:"filters"`
	Currency  string    `json:"currency"`
	Language  string    `json:"language"`
}

// BuildQuery turns state into the outbound query under session. The
// result shares no memory with state; an invalid sort order or page in a
// zero-value state falls back to asc and 1.
func BuildQuery(state State, session Session) Query {
	filters := make([]Filter, len(state.Filters))
	copy(filters, state.Filters)

	order := state.SortOrder
	if !order.Valid() {
		order = SortAsc
	}
	page := state.CurrentPage
	if page < 1 {
		page = 1
	}

	return Query{
		SortBy:    state.SortBy,
		SortOrder: order,
		Page:      page,
		Filters:   filters,
		Currency:  session.Currency,
		Language:  session.Language,
	}
}

// Key is a stable string for the query, used to key caches and snapshots.
// Two queries share a key only if they would ask the backend the same thing.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString("s=")
	b.WriteString(url.QueryEscape(q.SortBy))
	b.WriteString(":")
	b.WriteString(string(q.SortOrder))
	b.WriteString("|p=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("|f=")
	for i, f := range q.Filters {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(f.Value))
	}
	b.WriteString("|c=")
	b.WriteString(q.Currency)
	b.WriteString("|l=")
	b.WriteString(q.Language)
	return b.String()
}
