package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/catalog"
	"github.com/TeknoZest/damenschstorefront/internal/controller"
	"github.com/TeknoZest/damenschstorefront/internal/events"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/presenter"
	"github.com/TeknoZest/damenschstorefront/pkg/errors"
	"github.com/TeknoZest/damenschstorefront/pkg/middleware"
)

// ListingReader is implemented by catalog.Reader.
type ListingReader interface {
	Listing(ctx context.Context, category string, query listing.Query) (*catalog.Listing, error)
	PageSize() int
}

// ListingHandler serves listing pages and session-scoped intents
type ListingHandler struct {
	reader    ListingReader
	sessions  *controller.Sessions
	session   listing.Session
	publisher events.EventPublisher
	logger    *zap.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(reader ListingReader, sessions *controller.Sessions, session listing.Session, publisher events.EventPublisher, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		reader:    reader,
		sessions:  sessions,
		session:   session,
		publisher: publisher,
		logger:    logger,
	}
}

// GetListing handles GET /api/v1/listing
// @Summary      Get a listing page
// @Description  Stateless listing read. The whole state travels in the query string, so the URL can be shared or bookmarked.
// @Tags         listing
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for tracing"
// @Param        category      query     string  true   "Category slug"  example(women/tops)
// @Param        sortBy        query     string  false  "Sort field"  example(price)
// @Param        sortOrder     query     string  false  "asc or desc"  example(asc)
// @Param        page          query     int     false  "Page number, 1 or greater"  example(1)
// @Param        filter        query     []string  false  "Repeated key:value filter"  collectionFormat(multi)
// @Success      200  {object}  ListingResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Failure      502  {object}  errors.StandardError
// @Router       /listing [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.Error(errors.NewValidationError("category is required", "category"))
		return
	}

	state, err := listing.ParseState(c.Request.URL.Query())
	if err != nil {
		c.Error(errors.NewInvalidRequest("invalid listing parameters", err.Error()))
		return
	}

	query := listing.BuildQuery(state, h.session)
	page, err := h.reader.Listing(c.Request.Context(), category, query)
	if err != nil {
		c.Error(h.fetchError(category, err))
		return
	}

	h.publish(c.Request.Context(), events.ListingViewedEvent{
		SessionID:    middleware.GetSessionID(c),
		Category:     category,
		Query:        query,
		Total:        page.Result.Total,
		FromSnapshot: page.FromSnapshot,
		OccurredAt:   time.Now().UTC(),
	})

	c.JSON(http.StatusOK, ListingResponse{
		Category:     category,
		State:        state,
		Query:        query,
		Result:       page.Result,
		HasResults:   presenter.HasResults(page.Result),
		TotalPages:   presenter.TotalPages(page.Result.Total, h.reader.PageSize()),
		HasMore:      presenter.HasMore(page.Result, h.reader.PageSize()),
		FromSnapshot: page.FromSnapshot,
	})
}

// GetState handles GET /api/v1/listing/state
// @Summary      Get the session's listing state
// @Description  Returns the state built up by this session's intents and the last page applied for it. The first call for a session and category fetches the default page.
// @Tags         listing
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Storefront session id (or sessionId cookie)"
// @Param        category      query     string  true   "Category slug"
// @Success      200  {object}  ListingResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Failure      409  {object}  errors.StandardError
// @Failure      502  {object}  errors.StandardError
// @Router       /listing/state [get]
func (h *ListingHandler) GetState(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.Error(errors.NewValidationError("category is required", "category"))
		return
	}

	ctrl := h.sessions.Get(middleware.GetSessionID(c), category)
	if ctrl.Loaded() {
		c.JSON(http.StatusOK, h.viewResponse(ctrl.View()))
		return
	}

	view, err := ctrl.Load(c.Request.Context())
	if err != nil {
		c.Error(h.dispatchError(category, err))
		return
	}
	c.JSON(http.StatusOK, h.viewResponse(view))
}

// DispatchIntent handles POST /api/v1/listing/intents
// @Summary      Dispatch a listing intent
// @Description  Applies one intent to the session's listing and returns the new page. Any filter change sends the shopper back to page 1. If a newer intent arrives before this one's page is fetched, this one answers 409 and its page is dropped.
// @Tags         listing
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string         false  "Storefront session id (or sessionId cookie)"
// @Param        request       body      IntentRequest  true   "Intent"
// @Success      200  {object}  ListingResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Failure      409  {object}  errors.StandardError
// @Failure      502  {object}  errors.StandardError  "Upstream failure; details hold the last good state"
// @Router       /listing/intents [post]
func (h *ListingHandler) DispatchIntent(c *gin.Context) {
	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidRequest("invalid intent", err.Error()))
		return
	}

	intent, err := toIntent(req)
	if err != nil {
		c.Error(errors.NewValidationError(err.Error(), "type"))
		return
	}

	sessionID := middleware.GetSessionID(c)
	ctrl := h.sessions.Get(sessionID, req.Category)

	view, err := ctrl.Dispatch(c.Request.Context(), intent)
	if err != nil {
		c.Error(h.dispatchError(req.Category, err))
		return
	}

	h.publish(c.Request.Context(), events.ListingIntentDispatchedEvent{
		SessionID:  sessionID,
		Category:   req.Category,
		Intent:     intent.Name(),
		State:      view.State,
		OccurredAt: time.Now().UTC(),
	})

	c.JSON(http.StatusOK, h.viewResponse(view))
}

func (h *ListingHandler) viewResponse(view controller.View) ListingResponse {
	return ListingResponse{
		Category:     view.Category,
		State:        view.State,
		Query:        view.Query,
		Result:       view.Result,
		HasResults:   presenter.HasResults(view.Result),
		TotalPages:   presenter.TotalPages(view.Result.Total, h.reader.PageSize()),
		HasMore:      presenter.HasMore(view.Result, h.reader.PageSize()),
		FromSnapshot: view.FromSnapshot,
	}
}

func (h *ListingHandler) dispatchError(category string, err error) error {
	switch {
	case stderrors.Is(err, controller.ErrSuperseded):
		return errors.NewSuperseded(category)
	case stderrors.Is(err, listing.ErrInvalidPage),
		stderrors.Is(err, listing.ErrInvalidSortOrder),
		stderrors.Is(err, listing.ErrInvalidFilter),
		stderrors.Is(err, listing.ErrUnknownIntent):
		return errors.NewInvalidRequest("intent rejected", err.Error())
	}

	var fetchErr *controller.FetchError
	if stderrors.As(err, &fetchErr) {
		if stderrors.Is(err, catalog.ErrCategoryNotFound) {
			return errors.NewListingNotFound(category)
		}
		upstream := errors.NewUpstreamError("listing", fetchErr.Err)
		if state, marshalErr := json.Marshal(fetchErr.State); marshalErr == nil {
			upstream.Details = string(state)
		}
		return upstream
	}
	return h.fetchError(category, err)
}

func (h *ListingHandler) fetchError(category string, err error) error {
	if stderrors.Is(err, catalog.ErrCategoryNotFound) {
		return errors.NewListingNotFound(category)
	}
	h.logger.Error("Listing fetch failed", zap.String("category", category), zap.Error(err))
	return errors.NewUpstreamError("listing", err)
}

func (h *ListingHandler) publish(ctx context.Context, event events.Event) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish storefront event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

// toIntent maps the wire form of an intent onto the listing intent set.
func toIntent(req IntentRequest) (listing.Intent, error) {
	switch req.Type {
	case listing.SetSort{}.Name():
		return listing.SetSort{SortBy: req.SortBy}, nil
	case listing.SetSortOrder{}.Name():
		return listing.SetSortOrder{Order: listing.SortOrder(req.SortOrder)}, nil
	case listing.SetPage{}.Name():
		if req.Page == nil {
			return nil, fmt.Errorf("%s requires page", req.Type)
		}
		return listing.SetPage{Page: *req.Page}, nil
	case listing.AddFilter{}.Name():
		return listing.AddFilter{Filter: listing.Filter{Key: req.Key, Value: req.Value}}, nil
	case listing.RemoveFilter{}.Name():
		return listing.RemoveFilter{Filter: listing.Filter{Key: req.Key, Value: req.Value}}, nil
	case listing.ClearFilters{}.Name():
		return listing.ClearFilters{}, nil
	default:
		return nil, fmt.Errorf("unknown intent type %q", req.Type)
	}
}
