package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/BauthyBa/bautigatica/internal/clients"
	"github.com/BauthyBa/bautigatica/internal/config"
	"github.com/BauthyBa/bautigatica/internal/events"
	"github.com/BauthyBa/bautigatica/internal/handlers"
	"github.com/BauthyBa/bautigatica/internal/middleware"
	"github.com/BauthyBa/bautigatica/internal/repository"
)

// @title Bautigatica API
// @version 1.0.0
// @description Bakery storefront backend: catalog, WhatsApp checkout and purchase-message parsing.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Redis is optional: cache misses just hit postgres.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	productsRepo := repository.NewProductsRepository(db, redisClient)
	purchasesRepo := repository.NewPurchasesRepository(db)

	// Event publishing is optional, controlled by NATS_URL.
	var eventsPublisher *events.Publisher
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
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

	storageClient := clients.NewStorageClient(cfg.StorageURL, cfg.StorageBucket, cfg.StorageServiceKey)
	if storageClient == nil {
		log.Println("STORAGE_URL not set, image hosting disabled")
	}

	productsHandler := handlers.NewProductsHandler(productsRepo, storageClient, eventsPublisher, logger)
	purchasesHandler := handlers.NewPurchasesHandler(purchasesRepo, productsRepo, eventsPublisher, logger, cfg.PurchaseHistoryLimit)
	exportHandler := handlers.NewExportHandler(purchasesRepo, logger)
	checkoutHandler := handlers.NewCheckoutHandler(productsRepo, cfg.WhatsAppNumber, logger)
	authHandler := handlers.NewAuthHandler(cfg, logger)
	imagesHandler := handlers.NewImagesHandler(storageClient, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	var extraOrigins []string
	if raw := os.Getenv("CORS_EXTRA_ORIGINS"); raw != "" {
		extraOrigins = strings.Split(raw, ",")
	}
	router.Use(middleware.CORS(extraOrigins...))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// Public storefront: anyone can browse the catalog and check out.
		api.GET("/products", productsHandler.GetProducts)
		api.GET("/products/:id", productsHandler.GetProduct)
		api.POST("/checkout/whatsapp", checkoutHandler.Checkout)

		api.POST("/auth/login", authHandler.Login)

		// Admin panel routes.
		admin := api.Group("")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret))
		{
			admin.GET("/auth/me", authHandler.Me)

			admin.POST("/products", productsHandler.CreateProduct)
			admin.PUT("/products/:id", productsHandler.UpdateProduct)
			admin.DELETE("/products/:id", productsHandler.DeleteProduct)

			admin.POST("/images", imagesHandler.UploadImage)
			admin.DELETE("/images/*path", imagesHandler.DeleteImage)

			admin.POST("/purchases/parse", purchasesHandler.ParsePurchase)
			admin.POST("/purchases", purchasesHandler.CreatePurchase)
			admin.GET("/purchases", purchasesHandler.GetPurchases)
			admin.GET("/purchases/report", purchasesHandler.GetReport)
			admin.GET("/purchases/export", exportHandler.ExportPurchases)
			admin.DELETE("/purchases/:id", purchasesHandler.DeletePurchase)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Bautigatica service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down bautigatica...")
}
