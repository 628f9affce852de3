package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/cache"
	"github.com/TeknoZest/damenschstorefront/internal/catalog"
	"github.com/TeknoZest/damenschstorefront/internal/controller"
	"github.com/TeknoZest/damenschstorefront/internal/events"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/pkg/middleware"
)

// MockListingReader is a mock of ListingReader
type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) Listing(ctx context.Context, category string, query listing.Query) (*catalog.Listing, error) {
	args := m.Called(ctx, category, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Listing), args.Error(1)
}

func (m *MockListingReader) PageSize() int {
	return 20
}

// MockProductReader is a mock of ProductReader
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) Product(ctx context.Context, session listing.Session, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, session, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockPublisher is a mock of events.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

// MockCache is a mock of cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

var _ cache.Cache = (*MockCache)(nil)

var testSession = listing.Session{Currency: "GBP", Language: "en-GB"}

type testDeps struct {
	listings  *MockListingReader
	products  *MockProductReader
	publisher *MockPublisher
	cache     *MockCache
}

func newTestDeps() *testDeps {
	return &testDeps{
		listings:  new(MockListingReader),
		products:  new(MockProductReader),
		publisher: new(MockPublisher),
		cache:     new(MockCache),
	}
}

func setupTestRouter(deps *testDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	sessions := controller.NewSessions(deps.listings, testSession, time.Hour, logger)
	listingHandler := NewListingHandler(deps.listings, sessions, testSession, deps.publisher, logger)
	productHandler := NewProductHandler(deps.products, testSession, deps.publisher, logger)
	adminHandler := NewAdminHandler(deps.cache, logger)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(logger))
	router.Use(middleware.SessionMiddleware(30*time.Minute, logger))
	router.Use(middleware.ErrorHandler(logger))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", Health)
		v1.GET("/listing", listingHandler.GetListing)
		v1.GET("/listing/state", listingHandler.GetState)
		v1.POST("/listing/intents", listingHandler.DispatchIntent)
		v1.GET("/products/:slug", productHandler.GetProduct)
		v1.GET("/products/:slug/variants/resolve", productHandler.ResolveVariant)
		v1.GET("/products/:slug/variants/stock", productHandler.GetStock)
		v1.DELETE("/admin/cache", adminHandler.PurgeCache)
	}
	return router
}
