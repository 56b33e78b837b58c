package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"advisory-api/internal/clients"
	"advisory-api/internal/config"
	"advisory-api/internal/controllers"
	"advisory-api/internal/middleware"
	"advisory-api/internal/monitoring"
	"advisory-api/internal/repositories/mongo"
	"advisory-api/internal/scheduler"
	"advisory-api/internal/services"
	"advisory-api/pkg/cache"
	"advisory-api/pkg/database"
	"advisory-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatal("Invalid configuration: ", err)
	}

	// Initialize logger
	logger.Init(cfg.Logger)
	log := logrus.StandardLogger()
	log.WithField("service", "advisory-api").Info("Starting advisory API service...")

	// Initialize database connection
	db, err := database.NewMongoDB(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer db.Disconnect()

	// Initialize Redis summary cache. The service degrades to computing
	// summaries directly when the cache is unavailable.
	var summaryCache services.SummaryCache
	var redisClient *cache.RedisClient
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Cache)
		if err != nil {
			log.Warn("Redis unavailable, continuing without summary cache: ", err)
		} else {
			summaryCache = redisClient
			defer redisClient.Close()
		}
	}

	// Initialize metrics
	metrics := monitoring.NewPrometheusMetrics()
	monitoring.StartSystemMetricsRecording(metrics, 15*time.Second)

	// Initialize repositories
	userRepo := mongo.NewUserRepository(db.GetDatabase())
	portfolioRepo := mongo.NewPortfolioRepository(db.GetDatabase())
	snapshotRepo := mongo.NewSnapshotRepository(db.GetDatabase())

	// Initialize the text-completion client
	completionClient := clients.NewCompletionClient(cfg.Advisor, log)

	// Initialize services
	userService := services.NewUserService(userRepo, log)
	portfolioService := services.NewPortfolioService(portfolioRepo, snapshotRepo, summaryCache, log)
	adviceService := services.NewAdviceService(
		userRepo,
		portfolioRepo,
		completionClient,
		summaryCache,
		cfg.Cache.SummaryTTL,
		metrics,
		log,
	)

	// Initialize controllers
	healthController := controllers.NewHealthController(db)
	userController := controllers.NewUserController(userService, log)
	portfolioController := controllers.NewPortfolioController(portfolioService, log)
	adviceController := controllers.NewAdviceController(adviceService, log)

	// Start the snapshot scheduler
	var snapshotScheduler *scheduler.SnapshotScheduler
	if cfg.Scheduler.Enabled {
		snapshotScheduler, err = scheduler.NewSnapshotScheduler(cfg.Scheduler, portfolioRepo, snapshotRepo, metrics, log)
		if err != nil {
			log.Fatal("Failed to initialize snapshot scheduler: ", err)
		}
		if err := snapshotScheduler.Start(); err != nil {
			log.Fatal("Failed to start snapshot scheduler: ", err)
		}
	}

	// Setup HTTP server
	router := setupRouter(cfg, log, metrics, healthController, userController, portfolioController, adviceController)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: ", err)
	}

	if snapshotScheduler != nil {
		snapshotScheduler.Stop()
	}

	log.Info("Server exited")
}

func setupRouter(
	cfg *config.Config,
	log *logrus.Logger,
	metrics monitoring.MetricsService,
	healthController *controllers.HealthController,
	userController *controllers.UserController,
	portfolioController *controllers.PortfolioController,
	adviceController *controllers.AdviceController,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(log))
	router.Use(monitoring.Middleware(metrics))

	// Rate limiting
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		router.Use(limiter.Handler())
	}

	// Metrics scrape endpoint
	router.GET("/metrics", monitoring.Handler())

	// API routes
	api := router.Group("/")
	{
		healthController.RegisterRoutes(api)
		userController.RegisterRoutes(api)
		portfolioController.RegisterRoutes(api)
		adviceController.RegisterRoutes(api)
	}

	return router
}
