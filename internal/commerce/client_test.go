package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/listing"
)

var gbp = listing.Session{Currency: "GBP", Language: "en-GB"}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:    server.URL,
		Version:    "v1",
		Country:    "GB",
		Retries:    3,
		RetryDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestSearchListing(t *testing.T) {
	var got searchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/catalog/search", r.URL.Path)
		assert.Equal(t, "EUR", r.Header.Get(HeaderCurrency))
		assert.Equal(t, "fr-FR", r.Header.Get(HeaderLanguage))
		assert.Equal(t, "GB", r.Header.Get(HeaderCountry))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total": 1, "currentPage": 2, "items": [{"id": "p1", "slug": "tee"}]}`))
	})

	state := listing.State{SortBy: "price", SortOrder: listing.SortDesc, CurrentPage: 2, Filters: []listing.Filter{{Key: "brand", Value: "Nike"}}}
	query := listing.BuildQuery(state, listing.Session{Currency: "EUR", Language: "fr-FR"})

	raw, err := client.SearchListing(context.Background(), "cat-1", query, 24)

	require.NoError(t, err)
	require.NotNil(t, raw.Total)
	assert.Equal(t, 1, *raw.Total)
	assert.Equal(t, "tee", raw.Items[0].Slug)
	assert.Equal(t, searchRequest{
		CategoryID: "cat-1",
		SortBy:     "price",
		SortOrder:  "desc",
		Page:       2,
		PageSize:   24,
		Filters:    []listing.Filter{{Key: "brand", Value: "Nike"}},
	}, got)
}

func TestSearchListing_MalformedBodyIsEmptyListing(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"wrong field type", `{"total":"lots"}`},
		{"html", `<html>oops</html>`},
		{"empty body", ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Write([]byte(tc.body))
			})

			raw, err := client.SearchListing(context.Background(), "cat-1", listing.BuildQuery(listing.NewState(), gbp), 24)

			require.NoError(t, err)
			assert.Nil(t, raw)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "malformed body is not retried")
		})
	}
}

func TestGetCategoryBySlug_MalformedBodyIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.GetCategoryBySlug(context.Background(), gbp, "women/tops")

	assert.Error(t, err)
}

func TestGetCategoryBySlug(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/catalog/category/slug", r.URL.Path)
		assert.Equal(t, "women/tops", r.URL.Query().Get("slug"))
		w.Write([]byte(`{"id": "cat-9", "name": "Tops", "slug": "women/tops"}`))
	})

	category, err := client.GetCategoryBySlug(context.Background(), gbp, "women/tops")

	require.NoError(t, err)
	assert.Equal(t, "cat-9", category.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), gbp, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "404 is not retried")
}

func TestGetProduct_RetriesServerErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id": "p1", "slug": "tee", "price": {"raw": {"withTax": "10.00"}}}`))
	})

	product, err := client.GetProduct(context.Background(), gbp, "tee")

	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetProduct_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetProduct(context.Background(), gbp, "tee")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetProduct_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.GetProduct(context.Background(), gbp, "tee")

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&StatusError{StatusCode: 500}))
	assert.False(t, retryable(&StatusError{StatusCode: 422}))
	assert.False(t, retryable(ErrNotFound))
	assert.False(t, retryable(context.Canceled))
}
