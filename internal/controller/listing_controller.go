// Package controller drives a shopper's listing: it applies intents to the
// listing state, fetches the page for the new state and keeps only the
// response to the most recent intent.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/catalog"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/models"
	"github.com/TeknoZest/damenschstorefront/internal/presenter"
)

var ErrSuperseded = errors.New("listing intent superseded by a newer one")

// ListingSource fetches one listing page; implemented by catalog.Reader.
type ListingSource interface {
	Listing(ctx context.Context, category string, query listing.Query) (*catalog.Listing, error)
}

// View is what a shopper currently sees: the state and the page fetched
// for it.
type View struct {
	Category     string               `json:"category"`
	State        listing.State        `json:"state"`
	Query        listing.Query        `json:"query"`
	Result       models.ListingResult `json:"result"`
	FromSnapshot bool                 `json:"fromSnapshot"`
}

// FetchError reports a failed fetch. State is the last state whose page was
// fetched successfully, which remains the controller's state.
type FetchError struct {
	Intent string
	State  listing.State
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch listing after %s: %v", e.Intent, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ListingController owns the listing state of one session and category.
type ListingController struct {
	category string
	session  listing.Session
	source   ListingSource
	latest   *presenter.Latest
	logger   *zap.Logger

	mu sync.Mutex
	// committed has a fetched page; pending is the state of the newest
	// dispatch and the base the next intent is reduced against.
	committed    listing.State
	pending      listing.State
	fromSnapshot bool
	// loaded is set once any page has been applied.
	loaded bool
}

// NewListingController creates a controller at the default state.
func NewListingController(category string, session listing.Session, source ListingSource, logger *zap.Logger) *ListingController {
	return &ListingController{
		category:  category,
		session:   session,
		source:    source,
		latest:    presenter.NewLatest(),
		logger:    logger.With(zap.String("category", category)),
		committed: listing.NewState(),
		pending:   listing.NewState(),
	}
}

// Dispatch applies intent and fetches the resulting page. A rejected intent
// returns the reducer's error and changes nothing. If another Dispatch
// starts before this one's fetch completes, this one returns ErrSuperseded
// and its result is dropped.
func (c *ListingController) Dispatch(ctx context.Context, intent listing.Intent) (View, error) {
	c.mu.Lock()
	next, err := listing.Reduce(c.pending, intent)
	if err != nil {
		c.mu.Unlock()
		return View{}, err
	}
	c.pending = next
	fetchCtx, ticket := c.latest.Begin(ctx)
	c.mu.Unlock()

	query := listing.BuildQuery(next, c.session)
	c.logger.Debug("Dispatching listing intent",
		zap.String("intent", intent.Name()),
		zap.Uint64("seq", ticket.Seq()),
		zap.String("query", query.Key()),
	)

	page, fetchErr := c.source.Listing(fetchCtx, c.category, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.latest.IsLatest(ticket) {
		c.logger.Debug("Dropping superseded listing response", zap.Uint64("seq", ticket.Seq()))
		return View{}, ErrSuperseded
	}

	if fetchErr != nil {
		c.pending = c.committed
		return View{}, &FetchError{Intent: intent.Name(), State: c.committed, Err: fetchErr}
	}

	if !c.latest.Apply(ticket, page.Result) {
		return View{}, ErrSuperseded
	}
	c.committed = next
	c.fromSnapshot = page.FromSnapshot
	c.loaded = true

	return c.viewLocked(), nil
}

// Load fetches the page for the current state without changing it.
func (c *ListingController) Load(ctx context.Context) (View, error) {
	c.mu.Lock()
	state := c.pending
	fetchCtx, ticket := c.latest.Begin(ctx)
	c.mu.Unlock()

	page, err := c.source.Listing(fetchCtx, c.category, listing.BuildQuery(state, c.session))

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.latest.IsLatest(ticket) {
		return View{}, ErrSuperseded
	}
	if err != nil {
		return View{}, &FetchError{Intent: "LOAD", State: c.committed, Err: err}
	}
	if !c.latest.Apply(ticket, page.Result) {
		return View{}, ErrSuperseded
	}
	c.committed = state
	c.fromSnapshot = page.FromSnapshot
	c.loaded = true
	return c.viewLocked(), nil
}

// Loaded reports whether a page has been fetched for this controller. A
// controller created at page mount is not loaded until Load or Dispatch
// succeeds.
func (c *ListingController) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// View returns the committed state and its page.
func (c *ListingController) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *ListingController) viewLocked() View {
	return View{
		Category:     c.category,
		State:        c.committed,
		Query:        listing.BuildQuery(c.committed, c.session),
		Result:       c.latest.Current(),
		FromSnapshot: c.fromSnapshot,
	}
}

// Close cancels any fetch in flight.
func (c *ListingController) Close() {
	c.latest.Close()
}
