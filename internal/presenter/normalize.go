// Package presenter turns raw listing payloads into the shape views render
// and guards against stale responses overwriting newer ones.
package presenter

import (
	"encoding/json"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

// RawListing is a listing payload as the commerce API sends it. Any field
// may be missing.
type RawListing struct {
	Total       *int               `json:"total,omitempty"`
	CurrentPage *int               `json:"currentPage,omitempty"`
	Filters     []RawFilterSection `json:"filters,omitempty"`
	Items       []models.Product   `json:"items,omitempty"`
}

// RawFilterSection is one facet as the commerce API sends it.
type RawFilterSection struct {
	Name  string              `json:"name"`
	Key   string              `json:"key"`
	Items []models.FilterItem `json:"items,omitempty"`
}

// Normalize fills in every absent field so callers can render the result
// without nil checks. It never fails.
func Normalize(raw *RawListing) models.ListingResult {
	result := models.ListingResult{
		Total:       0,
		CurrentPage: 1,
		Filters:     []models.FilterSection{},
		Items:       []models.Product{},
	}
	if raw == nil {
		return result
	}

	if raw.Total != nil && *raw.Total > 0 {
		result.Total = *raw.Total
	}
	if raw.CurrentPage != nil && *raw.CurrentPage > 0 {
		result.CurrentPage = *raw.CurrentPage
	}

	for _, section := range raw.Filters {
		items := make([]models.FilterItem, len(section.Items))
		copy(items, section.Items)
		result.Filters = append(result.Filters, models.FilterSection{
			Name:  section.Name,
			Key:   section.Key,
			Items: items,
		})
	}

	if len(raw.Items) > 0 {
		result.Items = append(result.Items, raw.Items...)
	}

	return result
}

// ParseRawListing decodes a listing payload. ok is false and the listing
// nil when body is not a JSON listing object.
func ParseRawListing(body []byte) (raw *RawListing, ok bool) {
	var decoded RawListing
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, false
	}
	return &decoded, true
}

// NormalizeJSON decodes body and normalizes it. Undecodable input is
// treated as an empty listing.
func NormalizeJSON(body []byte) models.ListingResult {
	raw, _ := ParseRawListing(body)
	return Normalize(raw)
}

// HasResults reports whether the page has any items to render.
func HasResults(result models.ListingResult) bool {
	return len(result.Items) > 0
}

// TotalPages is the number of pages needed to show total items.
// It is at least 1 so a pager always has a page to show.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// HasMore reports whether pages past result.CurrentPage exist, for clients
// that append pages as the shopper scrolls instead of paging.
func HasMore(result models.ListingResult, pageSize int) bool {
	if pageSize <= 0 {
		return false
	}
	return result.CurrentPage*pageSize < result.Total
}
