package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/TeknoZest/damenschstorefront/docs" // Import docs for Swagger
	"github.com/TeknoZest/damenschstorefront/internal/auth"
	"github.com/TeknoZest/damenschstorefront/internal/cache"
	"github.com/TeknoZest/damenschstorefront/internal/catalog"
	"github.com/TeknoZest/damenschstorefront/internal/commerce"
	"github.com/TeknoZest/damenschstorefront/internal/config"
	"github.com/TeknoZest/damenschstorefront/internal/controller"
	"github.com/TeknoZest/damenschstorefront/internal/events"
	"github.com/TeknoZest/damenschstorefront/internal/handlers"
	"github.com/TeknoZest/damenschstorefront/internal/kafka"
	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/internal/repository"
	"github.com/TeknoZest/damenschstorefront/pkg/logger"
	"github.com/TeknoZest/damenschstorefront/pkg/middleware"
)

const sessionSweepInterval = time.Minute

// @title           Storefront Listing API
// @version         1.0
// @description     Category listings with filter, sort and pagination state, and product variant selection, read through a cache in front of the commerce API.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	envFile := pflag.String("env-file", ".env", "path to an env file")
	port := pflag.String("port", "", "HTTP port, overrides PORT")
	pflag.Parse()

	cfg := config.Load(*envFile)
	if *port != "" {
		cfg.Port = *port
	}

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting storefront listing service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("commerce_api", cfg.CommerceAPIURL),
		zap.String("currency", cfg.Currency),
		zap.String("language", cfg.Language),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheClient := cache.NewCache(cfg, appLogger)
	if closer, ok := cacheClient.(io.Closer); ok {
		defer closer.Close()
	}

	snapshots := newSnapshotRepository(cfg, appLogger)
	defer snapshots.Close()

	commerceClient := commerce.NewClient(commerce.Config{
		BaseURL: cfg.CommerceAPIURL,
		Version: cfg.CommerceAPIVersion,
		Country: cfg.Country,
		Timeout: cfg.CommerceTimeout,
		Retries: cfg.CommerceRetries,
	}, appLogger)

	reader := catalog.NewReader(commerceClient, cacheClient, snapshots,
		cache.TTL(cfg.CacheTTL), cfg.ListingPageSize, appLogger)

	session := listing.Session{Currency: cfg.Currency, Language: cfg.Language}
	sessions := controller.NewSessions(reader, session, cfg.SessionTTL, appLogger)
	go sessions.Run(ctx, sessionSweepInterval)

	publisher := newEventPublisher(cfg, appLogger)
	defer publisher.Close()

	if cfg.UseKafka {
		invalidator := kafka.NewInvalidator(cacheClient, snapshots, appLogger)
		consumer, err := kafka.NewConsumer(cfg, invalidator, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka consumer, continuing without cache invalidation", zap.Error(err))
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Start(ctx); err != nil {
					appLogger.Error("Kafka consumer error", zap.Error(err))
				}
			}()
			appLogger.Info("Kafka consumer started", zap.String("topic", cfg.KafkaTopicCatalog))
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, appLogger)
	authHandler := auth.NewAuthHandler(jwtManager, cfg.AdminUsername, cfg.AdminPassword, appLogger)

	listingHandler := handlers.NewListingHandler(reader, sessions, session, publisher, appLogger)
	productHandler := handlers.NewProductHandler(reader, session, publisher, appLogger)
	adminHandler := handlers.NewAdminHandler(cacheClient, appLogger)

	router := gin.New()

	// CORS must run first so preflight requests are answered
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(middleware.SessionMiddleware(cfg.SessionTTL, appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		listingGroup := v1.Group("/listing")
		{
			listingGroup.GET("", listingHandler.GetListing)
			listingGroup.GET("/state", listingHandler.GetState)
			listingGroup.POST("/intents", listingHandler.DispatchIntent)
		}

		products := v1.Group("/products")
		{
			products.GET("/:slug", productHandler.GetProduct)
			products.GET("/:slug/variants/resolve", productHandler.ResolveVariant)
			products.GET("/:slug/variants/stock", productHandler.GetStock)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		{
			admin.DELETE("/cache", adminHandler.PurgeCache)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// newSnapshotRepository opens the SQLite snapshot store, falling back to
// memory when no path is configured or the file cannot be opened.
func newSnapshotRepository(cfg *config.Config, logger *zap.Logger) repository.SnapshotRepository {
	if cfg.SQLitePath == "" {
		logger.Info("SQLite path not set, keeping snapshots in memory")
		return repository.NewInMemorySnapshotRepository()
	}

	repo, err := repository.NewSQLiteSnapshotRepository(cfg.SQLitePath, logger)
	if err != nil {
		logger.Warn("Failed to open snapshot store, keeping snapshots in memory",
			zap.String("path", cfg.SQLitePath),
			zap.Error(err),
		)
		return repository.NewInMemorySnapshotRepository()
	}
	return repo
}

func newEventPublisher(cfg *config.Config, logger *zap.Logger) events.EventPublisher {
	if !cfg.UseKafka {
		return events.NewInMemoryEventPublisher(logger)
	}

	publisher, err := events.NewKafkaEventPublisher(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Kafka publisher, storefront events stay in memory", zap.Error(err))
		return events.NewInMemoryEventPublisher(logger)
	}
	return publisher
}
