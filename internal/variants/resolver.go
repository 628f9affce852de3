// Package variants maps attribute selections (colour, size, ...) onto the
// concrete variant products of a product family. Every function here is
// pure: inputs are never mutated and a missing match is a normal outcome,
// not an error.
package variants

import (
	"strings"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

const productSlugPrefix = "products/"

// StockSnapshot is the stock and pre-order state of one variant as seen by
// an attribute swatch. The zero value means "nothing matched".
type StockSnapshot struct {
	Stock                int    `json:"stock"`
	ProductID            string `json:"productId"`
	IsPreOrderEnabled    bool   `json:"isPreOrderEnabled"`
	SellWithoutInventory bool   `json:"sellWithoutInventory"`
	StockCode            string `json:"stockCode"`
}

// Purchasable reports whether the snapshot can be added to a basket.
func (s StockSnapshot) Purchasable() bool {
	return s.Stock > 0 || s.IsPreOrderEnabled || s.SellWithoutInventory
}

// ResolveVariant returns the first variant, in list order, that carries the
// chosen attribute pair. ok is false when no variant carries it, in which
// case the caller must not navigate.
func ResolveVariant(product models.Product, chosen models.AttributePair) (models.VariantProduct, bool) {
	for _, variant := range product.VariantProducts {
		for _, attr := range variant.VariantAttributes {
			if attr == chosen {
				return cloneVariant(variant), true
			}
		}
	}
	return models.VariantProduct{}, false
}

// ResolveCurrentAttributesFromSlug returns the attribute values of the
// variant living at currentSlug. The map is empty (never nil) when the slug
// belongs to the parent product rather than a variant.
func ResolveCurrentAttributesFromSlug(variants []models.VariantProduct, currentSlug string) map[string]string {
	current := make(map[string]string)
	for _, variant := range variants {
		if variant.Slug != currentSlug {
			continue
		}
		for _, attr := range variant.VariantAttributes {
			current[attr.FieldCode] = attr.FieldValue
		}
	}
	return current
}

// GetStockForAttribute scans every variant for fieldCode (case-insensitive)
// and fieldValue (exact). When several variants match, the last one wins.
func GetStockForAttribute(variants []models.VariantProduct, fieldCode, fieldValue string) StockSnapshot {
	var snapshot StockSnapshot
	for _, variant := range variants {
		for _, attr := range variant.VariantAttributes {
			if strings.EqualFold(attr.FieldCode, fieldCode) && attr.FieldValue == fieldValue {
				snapshot = StockSnapshot{
					Stock:                variant.CurrentStock,
					ProductID:            variant.ProductID,
					IsPreOrderEnabled:    variant.IsPreOrderEnabled,
					SellWithoutInventory: variant.SellWithoutInventory,
					StockCode:            variant.StockCode,
				}
			}
		}
	}
	return snapshot
}

// VariantPath is the relative route a client navigates to for a variant.
func VariantPath(slug string) string {
	if slug == "" {
		return ""
	}
	return "/" + strings.TrimPrefix(slug, "/")
}

// ProductSlug turns a route parameter ("blue-tee") into the slug form the
// catalog stores on variants ("products/blue-tee").
func ProductSlug(routeSlug string) string {
	routeSlug = strings.Trim(routeSlug, "/")
	if strings.HasPrefix(routeSlug, productSlugPrefix) {
		return routeSlug
	}
	return productSlugPrefix + routeSlug
}

func cloneVariant(v models.VariantProduct) models.VariantProduct {
	attrs := make([]models.AttributePair, len(v.VariantAttributes))
	copy(attrs, v.VariantAttributes)
	v.VariantAttributes = attrs
	return v
}
