package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	state := State{SortBy: "price", SortOrder: SortDesc, CurrentPage: 2, Filters: []Filter{nike}}
	session := Session{Currency: "GBP", Language: "en-GB"}

	query := BuildQuery(state, session)

	assert.Equal(t, Query{
		SortBy:    "price",
		SortOrder: SortDesc,
		Page:      2,
		Filters:   []Filter{nike},
		Currency:  "GBP",
		Language:  "en-GB",
	}, query)

	query.Filters[0].Value = "changed"
	assert.Equal(t, "Nike", state.Filters[0].Value)
}

func TestBuildQuery_RepairsZeroState(t *testing.T) {
	query := BuildQuery(State{}, Session{})

	assert.Equal(t, SortAsc, query.SortOrder)
	assert.Equal(t, 1, query.Page)
	assert.NotNil(t, query.Filters)
}

func TestQueryKey(t *testing.T) {
	session := Session{Currency: "GBP", Language: "en-GB"}
	base := BuildQuery(NewState(), session)
	withFilter := BuildQuery(State{SortOrder: SortAsc, CurrentPage: 1, Filters: []Filter{nike}}, session)
	otherCurrency := BuildQuery(NewState(), Session{Currency: "EUR", Language: "en-GB"})

	assert.Equal(t, "s=:asc|p=1|f=|c=GBP|l=en-GB", base.Key())
	assert.Equal(t, "s=:asc|p=1|f=brand=Nike|c=GBP|l=en-GB", withFilter.Key())
	assert.NotEqual(t, base.Key(), otherCurrency.Key())
	assert.Equal(t, base.Key(), BuildQuery(NewState(), session).Key())
}

func TestParseState(t *testing.T) {
	values, err := url.ParseQuery("sortBy=price&sortOrder=DESC&page=3&filter=brand:Nike&filter=size:M&filter=brand:Nike")
	require.NoError(t, err)

	state, err := ParseState(values)

	require.NoError(t, err)
	assert.Equal(t, State{
		SortBy:      "price",
		SortOrder:   SortDesc,
		CurrentPage: 3,
		Filters:     []Filter{nike, {Key: "size", Value: "M"}},
	}, state)
}

func TestParseState_Defaults(t *testing.T) {
	state, err := ParseState(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, NewState(), state)
}

func TestParseState_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected error
	}{
		{"page zero", "page=0", ErrInvalidPage},
		{"page not a number", "page=two", ErrInvalidPage},
		{"bad order", "sortOrder=up", ErrInvalidSortOrder},
		{"filter without value", "filter=brand", ErrInvalidFilter},
		{"filter with empty key", "filter=:Nike", ErrInvalidFilter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			_, err = ParseState(values)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestStateValues_RoundTrip(t *testing.T) {
	state := State{SortBy: "name", SortOrder: SortDesc, CurrentPage: 4, Filters: []Filter{nike, {Key: "colour", Value: "navy:blue"}}}

	parsed, err := ParseState(state.Values())

	require.NoError(t, err)
	assert.Equal(t, state, parsed)
}
