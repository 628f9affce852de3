// Package catalog reads listings and products cache-first, falling back to
// the last known-good snapshot when the commerce API fails.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/cache"
	"github.com/TeknoZest/damenschstorefront/internal/commerce"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/models"
	"github.com/TeknoZest/damenschstorefront/internal/presenter"
	"github.com/TeknoZest/damenschstorefront/internal/repository"
	"github.com/TeknoZest/damenschstorefront/internal/variants"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// Source is the upstream catalog, implemented by commerce.Client.
type Source interface {
	GetCategoryBySlug(ctx context.Context, session listing.Session, slug string) (*models.Category, error)
	SearchListing(ctx context.Context, categoryID string, query listing.Query, pageSize int) (*presenter.RawListing, error)
	GetProduct(ctx context.Context, session listing.Session, slug string) (*models.Product, error)
}

// Listing is one normalized page and where it came from.
type Listing struct {
	Result       models.ListingResult
	FromCache    bool
	FromSnapshot bool
}

// Product is a product family and where it came from.
type Product struct {
	Product      models.Product
	FromCache    bool
	FromSnapshot bool
}

// Reader reads catalog data cache-first with a snapshot fallback.
type Reader struct {
	source    Source
	cache     cache.Cache
	snapshots repository.SnapshotRepository
	cacheTTL  time.Duration
	pageSize  int
	logger    *zap.Logger
}

// NewReader creates a new catalog reader
func NewReader(source Source, c cache.Cache, snapshots repository.SnapshotRepository, cacheTTL time.Duration, pageSize int, logger *zap.Logger) *Reader {
	return &Reader{
		source:    source,
		cache:     c,
		snapshots: snapshots,
		cacheTTL:  cacheTTL,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// PageSize is the number of items requested per listing page.
func (r *Reader) PageSize() int {
	return r.pageSize
}

// Listing returns one normalized page of category for query.
func (r *Reader) Listing(ctx context.Context, category string, query listing.Query) (*Listing, error) {
	key := cache.ListingKey(category, query.Key())

	var cached models.ListingResult
	if err := cache.GetJSON(ctx, r.cache, key, &cached); err == nil {
		r.logger.Debug("Listing served from cache", zap.String("key", key))
		return &Listing{Result: cached, FromCache: true}, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Cache read failed, fetching from commerce API", zap.String("key", key), zap.Error(err))
	}

	result, err := r.fetchListing(ctx, category, query)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) || ctx.Err() != nil {
			return nil, err
		}
		snapshot, snapErr := r.snapshots.FindListing(ctx, category, query.Key())
		if snapErr != nil {
			r.logger.Error("Listing fetch failed and no snapshot available",
				zap.String("category", category),
				zap.Error(err),
			)
			return nil, err
		}
		r.logger.Warn("Serving listing from snapshot",
			zap.String("category", category),
			zap.Time("saved_at", snapshot.SavedAt),
			zap.Error(err),
		)
		return &Listing{Result: snapshot.Result, FromSnapshot: true}, nil
	}

	if err := cache.SetJSON(ctx, r.cache, key, result, r.cacheTTL); err != nil {
		r.logger.Warn("Failed to cache listing", zap.String("key", key), zap.Error(err))
	}
	if err := r.snapshots.SaveListing(ctx, category, query.Key(), result); err != nil {
		r.logger.Warn("Failed to save listing snapshot", zap.String("category", category), zap.Error(err))
	}

	return &Listing{Result: result}, nil
}

func (r *Reader) fetchListing(ctx context.Context, category string, query listing.Query) (models.ListingResult, error) {
	session := listing.Session{Currency: query.Currency, Language: query.Language}
	resolved, err := r.category(ctx, session, category)
	if err != nil {
		return models.ListingResult{}, err
	}

	raw, err := r.source.SearchListing(ctx, resolved.ID, query, r.pageSize)
	if err != nil {
		return models.ListingResult{}, fmt.Errorf("search %s: %w", category, err)
	}
	return presenter.Normalize(raw), nil
}

// category resolves a category slug to its record; slug -> id mappings are
// cached alongside listings.
func (r *Reader) category(ctx context.Context, session listing.Session, slug string) (*models.Category, error) {
	key := cache.CategoryKey(slug)

	var cached models.Category
	if err := cache.GetJSON(ctx, r.cache, key, &cached); err == nil {
		return &cached, nil
	}

	category, err := r.source.GetCategoryBySlug(ctx, session, slug)
	if errors.Is(err, commerce.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", slug, ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category %s: %w", slug, err)
	}

	if err := cache.SetJSON(ctx, r.cache, key, category, r.cacheTTL); err != nil {
		r.logger.Warn("Failed to cache category", zap.String("key", key), zap.Error(err))
	}
	return category, nil
}

// Product returns the product family at slug. The route slug ("tee") is
// sent to the commerce API as is; cache and snapshot entries are keyed by
// the canonical "products/tee" form the catalog and invalidation events use.
func (r *Reader) Product(ctx context.Context, session listing.Session, slug string) (*Product, error) {
	canonical := variants.ProductSlug(slug)
	key := cache.ProductKey(canonical)

	var cached models.Product
	if err := cache.GetJSON(ctx, r.cache, key, &cached); err == nil {
		return &Product{Product: cached, FromCache: true}, nil
	}

	product, err := r.source.GetProduct(ctx, session, slug)
	if errors.Is(err, commerce.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", slug, ErrProductNotFound)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		snapshot, snapErr := r.snapshots.FindProduct(ctx, canonical)
		if snapErr != nil {
			return nil, err
		}
		r.logger.Warn("Serving product from snapshot", zap.String("slug", canonical), zap.Error(err))
		return &Product{Product: snapshot.Product, FromSnapshot: true}, nil
	}

	if err := cache.SetJSON(ctx, r.cache, key, product, r.cacheTTL); err != nil {
		r.logger.Warn("Failed to cache product", zap.String("key", key), zap.Error(err))
	}
	if err := r.snapshots.SaveProduct(ctx, canonical, *product); err != nil {
		r.logger.Warn("Failed to save product snapshot", zap.String("slug", canonical), zap.Error(err))
	}
	return &Product{Product: *product}, nil
}
