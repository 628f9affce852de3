package handlers

import (
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/models"
	"github.com/TeknoZest/damenschstorefront/internal/variants"
)

// ListingResponse is one page of a category listing
// @Description Listing page with the state and query that produced it
type ListingResponse struct {
	Category string               `json:"category" example:"women/tops"`
	State    listing.State        `json:"state"`
	Query    listing.Query        `json:"query"`
	Result   models.ListingResult `json:"result"`

	// False when the page has no items; clients show an empty state
	HasResults bool `json:"hasResults" example:"true"`

	TotalPages int `json:"totalPages" example:"5"`

	// True while pages past the current one exist (infinite scroll)
	HasMore bool `json:"hasMore" example:"true"`

	// True when the commerce API was unavailable and a stored copy was served
	FromSnapshot bool `json:"fromSnapshot" example:"false"`
}

// IntentRequest is a shopper action on a listing
// @Description Listing intent. Which fields are read depends on type.
type IntentRequest struct {
	Category string `json:"category" binding:"required" example:"women/tops"`

	// One of SET_SORT, SET_SORT_ORDER, SET_PAGE, ADD_FILTER, REMOVE_FILTER, CLEAR_FILTERS
	Type string `json:"type" binding:"required" example:"ADD_FILTER"`

	SortBy    string `json:"sortBy,omitempty" example:"price"`
	SortOrder string `json:"sortOrder,omitempty" example:"desc"`
	Page      *int   `json:"page,omitempty" example:"2"`
	Key       string `json:"key,omitempty" example:"brand"`
	Value     string `json:"value,omitempty" example:"Nike"`
}

// ProductResponse is a product family with its attribute pickers
// @Description Product detail with variant selectors
type ProductResponse struct {
	Product           models.Product      `json:"product"`
	Selectors         []variants.Selector `json:"selectors"`
	CurrentAttributes map[string]string   `json:"currentAttributes"`
	FromSnapshot      bool                `json:"fromSnapshot" example:"false"`
}

// VariantResolveResponse tells the client where to navigate
// @Description Resolved variant slug and route
type VariantResolveResponse struct {
	Slug      string `json:"slug" example:"products/tee-red"`
	Path      string `json:"path" example:"/products/tee-red"`
	StockCode string `json:"stockCode,omitempty" example:"TEE-RED-M"`
}

// CachePurgeResponse reports a cache purge
// @Description Result of a cache purge
type CachePurgeResponse struct {
	Pattern string `json:"pattern" example:"listing:*"`
	Status  string `json:"status" example:"purged"`
}

// HealthResponse represents the service health
// @Description Service health
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"storefront-listing"`
}
