package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stayfinder/booking-platform/internal/analytics"
	"github.com/stayfinder/booking-platform/pkg/common"
	"github.com/stayfinder/booking-platform/pkg/config"
	"github.com/stayfinder/booking-platform/pkg/database"
	"github.com/stayfinder/booking-platform/pkg/logger"
	"github.com/stayfinder/booking-platform/pkg/middleware"
	"github.com/stayfinder/booking-platform/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load("admin-analytics")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to PostgreSQL
	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL database")

	// Connect to Redis (dashboard cache); the engine works without it
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info("Connected to Redis")
	}

	// Create service and handler. The document exporter is a separate
	// deployable; export requests fail gracefully until one is wired in.
	repo := analytics.NewRepository(pool)
	service := analytics.NewService(repo, nil, redisClient, &cfg.Dashboard)
	handler := analytics.NewHandler(service)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, "1.0.0", map[string]func() error{
		"postgres": func() error { return pool.Ping(context.Background()) },
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Admin analytics routes
	api := router.Group("/api/v1")
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminOnly())
	handler.RegisterRoutes(admin)

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("Admin analytics service starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
