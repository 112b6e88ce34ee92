package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/menswear/storefront/config"
	"github.com/menswear/storefront/controllers"
	"github.com/menswear/storefront/database"
	"github.com/menswear/storefront/logger"
	"github.com/menswear/storefront/middleware"
	"github.com/menswear/storefront/repository"
	"github.com/menswear/storefront/routes"
	"github.com/menswear/storefront/services"
	"github.com/menswear/storefront/storage"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Stores ---
	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.DisconnectMongo(mongoClient); err != nil {
			log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancelIndex()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	var images storage.ImageStore
	if cfg.S3Bucket != "" {
		images, err = storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatal("Failed to initialize S3 image store", zap.Error(err))
		}
		log.Info("Using S3 image store", zap.String("bucket", cfg.S3Bucket))
	} else {
		images, err = storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatal("Failed to initialize disk image store", zap.Error(err))
		}
	}

	// --- Service wiring ---
	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	authService := services.NewAuthService(userRepo)
	productService := services.NewProductService(productRepo, images)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo)
	adminService := services.NewAdminService(productRepo, orderRepo, userRepo)

	ctrl := routes.Controllers{
		Auth:    controllers.NewAuthController(authService, tokens),
		Product: controllers.NewProductController(productService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService),
		Admin:   controllers.NewAdminController(adminService),
		Upload:  controllers.NewUploadController(images),
	}

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit())
	r.Use(middleware.RequestTimeout(30 * time.Second))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.MaxMultipartMemory = storage.MaxImageSize

	if cfg.S3Bucket == "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	routes.Register(r, ctrl, tokens)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Info("Storefront service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down storefront service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Storefront service stopped gracefully")
}
