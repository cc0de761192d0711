package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skill-mint/auth-service/handlers"
	"github.com/skill-mint/auth-service/internal/config"
	"github.com/skill-mint/auth-service/internal/database"
	"github.com/skill-mint/auth-service/internal/users"
	"github.com/skill-mint/auth-service/pkg/logger"
	"github.com/skill-mint/auth-service/pkg/metrics"
	"github.com/skill-mint/auth-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware matching the historical allow-all policy.
	// (Production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Fixed-window limiters around the auth routes. Two tiers: a normal one
	// and a strict one for /google-login when configured.
	var normalLimit, strictLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		if cfg.RateLimit.UseRedis && redisClient != nil {
			normalLimit = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.Max, window, middleware.RateLimitCode)
			strictLimit = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.StrictMax, window, middleware.RateLimitStrictCode)
		} else {
			rps := float64(cfg.RateLimit.Max) / window.Seconds()
			strictRPS := float64(cfg.RateLimit.StrictMax) / window.Seconds()
			normalLimit = middleware.RateLimitMiddleware(rps, cfg.RateLimit.Max, middleware.RateLimitCode)
			strictLimit = middleware.RateLimitMiddleware(strictRPS, cfg.RateLimit.StrictMax, middleware.RateLimitStrictCode)
		}
	}

	// Root + liveness endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Skill Mint Server is running", "version": "1.0.0"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// shared runtime vars used by handlers/readiness
	var mongoClient *mongo.Client
	var userSvc *users.Service

	// readiness endpoint — 200 only when the identity store is available
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"storage": userSvc != nil,
			"redis":   redisClient != nil || cfg.Redis.Host == "",
		}
		if userSvc == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races. The
	// identity store is the one hard dependency: without it the process exits.
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		mongoClient, errConn = database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	usersCol := mongoClient.Database(cfg.MongoDB.Database).Collection("users")
	if err := database.EnsureUserIndexes(ctx, usersCol); err != nil {
		logger.Fatalf("failed to initialize user indexes: %v", err)
	}
	userSvc = users.NewService(users.NewMongoRepository(usersCol))

	h := handlers.NewAuthHandler(cfg, userSvc)
	h.Register(r.Group("/"), normalLimit, strictLimit)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Route not found"})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting auth service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
