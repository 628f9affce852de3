package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/cache"
	"github.com/TeknoZest/damenschstorefront/internal/repository"
	"github.com/TeknoZest/damenschstorefront/internal/variants"
)

// Catalog event types published by the commerce backend.
const (
	EventProductUpdated  = "ProductUpdated"
	EventProductDeleted  = "ProductDeleted"
	EventStockChanged    = "StockChanged"
	EventCategoryUpdated = "CategoryUpdated"
)

var ErrUnknownEvent = errors.New("unknown catalog event type")

// CatalogEvent is the JSON payload of a catalog change.
type CatalogEvent struct {
	EventID  string `json:"eventId,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Category string `json:"category,omitempty"`
}

// Invalidator drops cached data made stale by a catalog event.
type Invalidator struct {
	cache     cache.Cache
	snapshots repository.SnapshotRepository
	logger    *zap.Logger
}

// NewInvalidator creates a new invalidator
func NewInvalidator(c cache.Cache, snapshots repository.SnapshotRepository, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: c, snapshots: snapshots, logger: logger}
}

// Handle applies one catalog event. Unknown event types return
// ErrUnknownEvent.
func (i *Invalidator) Handle(ctx context.Context, eventType string, payload []byte) error {
	var event CatalogEvent
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &event); err != nil {
			i.logger.Warn("Undecodable catalog event, invalidating broadly",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}
	// Events may carry "tee" or "products/tee"; entries are stored under the latter.
	if event.Slug != "" {
		event.Slug = variants.ProductSlug(event.Slug)
	}

	switch eventType {
	case EventProductUpdated, EventStockChanged:
		return i.invalidateProduct(ctx, event.Slug)

	case EventProductDeleted:
		if event.Slug != "" {
			if err := i.snapshots.DeleteProduct(ctx, event.Slug); err != nil {
				i.logger.Warn("Failed to delete product snapshot", zap.String("slug", event.Slug), zap.Error(err))
			}
		}
		return i.invalidateProduct(ctx, event.Slug)

	case EventCategoryUpdated:
		return i.invalidateCategory(ctx, event.Category)

	default:
		return fmt.Errorf("%s: %w", eventType, ErrUnknownEvent)
	}
}

// invalidateProduct drops the product and every cached listing page, since
// any listing may show the product.
func (i *Invalidator) invalidateProduct(ctx context.Context, slug string) error {
	var errs []error

	if slug != "" {
		if err := i.cache.Delete(ctx, cache.ProductKey(slug)); err != nil {
			errs = append(errs, err)
		}
	} else if err := i.cache.DeleteByPattern(ctx, cache.ProductKey("*")); err != nil {
		errs = append(errs, err)
	}

	if err := i.cache.DeleteByPattern(ctx, cache.AllListingsPattern); err != nil {
		errs = append(errs, err)
	}

	i.logger.Debug("Product cache invalidated", zap.String("slug", slug))
	return errors.Join(errs...)
}

func (i *Invalidator) invalidateCategory(ctx context.Context, category string) error {
	if category == "" {
		return i.cache.DeleteByPattern(ctx, cache.AllListingsPattern)
	}

	var errs []error
	if err := i.cache.DeleteByPattern(ctx, cache.ListingPattern(category)); err != nil {
		errs = append(errs, err)
	}
	if err := i.cache.Delete(ctx, cache.CategoryKey(category)); err != nil {
		errs = append(errs, err)
	}

	i.logger.Debug("Category cache invalidated", zap.String("category", category))
	return errors.Join(errs...)
}
