package main

import (
	"context"                    // context package is needed for Redis operations
	"log"                        // log package is needed for logging
	"papertrade/internal/api"     // Custom package for API handlers
	"papertrade/internal/config"  // Custom package for configuration
	"papertrade/internal/quote"   // Custom package for quote lookup
	"papertrade/internal/session" // Custom package for sessions

	// For loading .env files
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/gin-gonic/gin" // Gin web framework
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The quote provider key must be present at startup
	if cfg.APIKey == "" {
		logrus.Fatal("API_KEY not set")
	}

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL) // Session store
	quotes := quote.New(cfg.APIKey)                                // Quote client

	r := api.NewRouter(db, sessions, quotes, cfg) // Assemble routes

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
