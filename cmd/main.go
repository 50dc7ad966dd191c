package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "storefront-service/docs"
	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/checkout"
	"storefront-service/internal/clients"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
)

// @title Storefront API
// @version 1.0.0
// @description Catalog browsing, cart and checkout for the MiniShop storefront

// @host localhost:8093
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize the cart's key-value slot. Redis is preferred; when it is
	// unreachable the cart degrades to an in-process slot so the storefront
	// stays usable.
	var cartKV cart.KV
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (cart persistence will be in-memory)", err)
		cartKV = cart.NewMemoryKV()
	} else {
		redisClient := redis.NewClient(redisOpts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (cart persistence will be in-memory)", err)
			cartKV = cart.NewMemoryKV()
		} else {
			log.Println("✓ Redis connected successfully")
			cartKV = cart.NewRedisKV(redisClient, cfg.CartKey)
		}
		cancel()
	}

	// Initialize event publisher only if NATS_URL is set
	var eventsPublisher *events.Publisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL != "" {
		eventsPublisher, err = events.NewPublisher(natsURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer eventsPublisher.Close()

	// Load the catalog: remote URL, embedded fallback, empty. Never fatal.
	loader := catalog.NewLoader(cfg.CatalogURL, logger)
	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	loader.Load(startupCtx)
	cancel()
	log.Printf("✓ Catalog loaded (%d products)", loader.Len())

	// Restore the persisted cart
	cartStore := cart.NewStore(cartKV, cfg.TaxRate, logger)
	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cartStore.Load(loadCtx)
	cancel()
	log.Printf("✓ Cart restored (%d items)", cartStore.Count())

	// Initialize clients and services
	mailClient := clients.NewMailClient(cfg.OrderEndpoint)
	checkoutService := checkout.NewService(cartStore, mailClient, eventsPublisher, logger)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(loader, cfg)
	cartHandler := handlers.NewCartHandler(cartStore, loader)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	importHandler := handlers.NewImportHandler(loader, eventsPublisher, logger)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", middleware.MetricsHandler())

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", catalogHandler.GetProducts)
		v1.GET("/products/:id", catalogHandler.GetProduct)
		v1.GET("/categories", catalogHandler.GetCategories)

		carts := v1.Group("/cart")
		{
			carts.GET("", cartHandler.GetCart)
			carts.DELETE("", cartHandler.ClearCart)
			carts.POST("/items", cartHandler.AddItem)
			carts.PUT("/items/:id", cartHandler.SetQuantity)
			carts.DELETE("/items/:id", cartHandler.RemoveItem)
			carts.GET("/totals", cartHandler.GetTotals)
			carts.POST("/demo", cartHandler.DemoAdd)
		}

		v1.GET("/checkout/snapshot", checkoutHandler.GetSnapshot)
		v1.POST("/checkout", checkoutHandler.PlaceOrder)

		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.POST("/reload", catalogHandler.ReloadCatalog)
			catalogRoutes.GET("/import/template", importHandler.GetImportTemplate)
			catalogRoutes.POST("/import", importHandler.ImportCatalog)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	port := cfg.Port

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Storefront service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down storefront-service...")
	log.Println("Storefront service stopped")
}
