// Package repository keeps the last known-good listing pages and products
// so the storefront can still answer when the commerce API is down.
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// ListingSnapshot is the last good page stored for a listing query.
type ListingSnapshot struct {
	Category string
	QueryKey string
	Result   models.ListingResult
	SavedAt  time.Time
}

// ProductSnapshot is the last good product family stored for a slug.
type ProductSnapshot struct {
	Product models.Product
	SavedAt time.Time
}

// SnapshotRepository stores the latest successful response per listing
// query and per product slug. Saving overwrites. Product slugs are stored
// as given; callers pass the canonical "products/..." form.
type SnapshotRepository interface {
	SaveListing(ctx context.Context, category, queryKey string, result models.ListingResult) error
	FindListing(ctx context.Context, category, queryKey string) (*ListingSnapshot, error)
	SaveProduct(ctx context.Context, slug string, product models.Product) error
	FindProduct(ctx context.Context, slug string) (*ProductSnapshot, error)
	DeleteProduct(ctx context.Context, slug string) error
	Close() error
}

type listingID struct {
	category string
	queryKey string
}

// InMemorySnapshotRepository is used when no SQLite path is configured and
// in tests.
type InMemorySnapshotRepository struct {
	mu       sync.RWMutex
	listings map[listingID]ListingSnapshot
	products map[string]ProductSnapshot
	now      func() time.Time
}

// NewInMemorySnapshotRepository creates an empty in-memory repository
func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		listings: make(map[listingID]ListingSnapshot),
		products: make(map[string]ProductSnapshot),
		now:      time.Now,
	}
}

func (r *InMemorySnapshotRepository) SaveListing(ctx context.Context, category, queryKey string, result models.ListingResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings[listingID{category, queryKey}] = ListingSnapshot{
		Category: category,
		QueryKey: queryKey,
		Result:   result,
		SavedAt:  r.now().UTC(),
	}
	return nil
}

func (r *InMemorySnapshotRepository) FindListing(ctx context.Context, category, queryKey string) (*ListingSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.listings[listingID{category, queryKey}]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return &snapshot, nil
}

func (r *InMemorySnapshotRepository) SaveProduct(ctx context.Context, slug string, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[slug] = ProductSnapshot{Product: product, SavedAt: r.now().UTC()}
	return nil
}

func (r *InMemorySnapshotRepository) FindProduct(ctx context.Context, slug string) (*ProductSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.products[slug]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return &snapshot, nil
}

func (r *InMemorySnapshotRepository) DeleteProduct(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, slug)
	return nil
}

func (r *InMemorySnapshotRepository) Close() error {
	return nil
}
