// Package commerce is the HTTP client for the remote commerce API that owns
// categories, products and listing search.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/models"
	"github.com/TeknoZest/damenschstorefront/internal/presenter"
	"github.com/TeknoZest/damenschstorefront/pkg/middleware"
	"github.com/TeknoZest/damenschstorefront/pkg/retry"
)

const (
	HeaderCurrency = "Currency"
	HeaderLanguage = "Language"
	HeaderCountry  = "Country"
)

var ErrNotFound = errors.New("commerce: resource not found")

// StatusError is an unexpected response status from the commerce API.
type StatusError struct {
	Op         string
	StatusCode int
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("commerce %s: unexpected status %d", e.Op, e.StatusCode)
}

// Config configures the commerce API client.
type Config struct {
	BaseURL    string
	Version    string
	Country    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// Client calls the commerce API.
type Client struct {
	http    *http.Client
	baseURL string
	version string
	country string
	retry   retry.Config
	logger  *zap.Logger
}

// NewClient creates a new commerce API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "v1"
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		version: cfg.Version,
		country: cfg.Country,
		retry: retry.Config{
			MaxAttempts: cfg.Retries,
			Backoff:     retry.ExponentialBackoff(cfg.RetryDelay),
			ShouldRetry: retryable,
		},
		logger: logger,
	}
}

// searchRequest is the body of POST /catalog/search.
type searchRequest struct {
	CategoryID string           `json:"categoryId"`
	SortBy     string           `json:"sortBy,omitempty"`
	SortOrder  string           `json:"sortOrder"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Filters    []listing.Filter `json:"filters"`
}

// GetCategoryBySlug resolves a category slug to the category record whose
// id the search endpoint expects.
func (c *Client) GetCategoryBySlug(ctx context.Context, session listing.Session, slug string) (*models.Category, error) {
	endpoint := c.endpoint("catalog/category/slug") + "?slug=" + url.QueryEscape(slug)

	var category models.Category
	if err := c.do(ctx, "category", http.MethodGet, endpoint, session, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// SearchListing fetches one page of a category listing. A 2xx body that is
// not a listing (empty, HTML, wrong field types) yields a nil RawListing
// and no error; presenter.Normalize turns that into an empty page.
func (c *Client) SearchListing(ctx context.Context, categoryID string, query listing.Query, pageSize int) (*presenter.RawListing, error) {
	body, err := json.Marshal(searchRequest{
		CategoryID: categoryID,
		SortBy:     query.SortBy,
		SortOrder:  string(query.SortOrder),
		Page:       query.Page,
		PageSize:   pageSize,
		Filters:    query.Filters,
	})
	if err != nil {
		return nil, fmt.Errorf("commerce search: encode request: %w", err)
	}

	session := listing.Session{Currency: query.Currency, Language: query.Language}
	var payload []byte
	if err := c.do(ctx, "search", http.MethodPost, c.endpoint("catalog/search"), session, body, &payload); err != nil {
		return nil, err
	}

	raw, ok := presenter.ParseRawListing(payload)
	if !ok {
		c.logger.Warn("Malformed search response, treating as empty listing",
			zap.String("category_id", categoryID),
			zap.Int("bytes", len(payload)),
		)
	}
	return raw, nil
}

// GetProduct fetches a product family by slug.
func (c *Client) GetProduct(ctx context.Context, session listing.Session, slug string) (*models.Product, error) {
	endpoint := c.endpoint("catalog/product/" + url.PathEscape(slug))

	var product models.Product
	if err := c.do(ctx, "product", http.MethodGet, endpoint, session, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/api/%s/%s", c.baseURL, c.version, path)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, session listing.Session, body []byte, out interface{}) error {
	attempt := 0
	err := retry.Do(ctx, c.retry, func() error {
		attempt++
		err := c.roundTrip(ctx, op, method, endpoint, session, body, out)
		if err != nil && retryable(err) {
			c.logger.Warn("Commerce API call failed",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("commerce %s: %w", op, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, endpoint string, session listing.Session, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderCurrency, session.Currency)
	req.Header.Set(HeaderLanguage, session.Language)
	if c.country != "" {
		req.Header.Set(HeaderCountry, c.country)
	}
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return &StatusError{Op: op, StatusCode: res.StatusCode}
	}

	// *[]byte takes the body undecoded
	if buf, ok := out.(*[]byte); ok {
		data, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*buf = data
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryable reports whether err is a transport failure or a 5xx.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
