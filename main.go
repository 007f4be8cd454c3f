package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/contentforge/backend/logging"
	"github.com/contentforge/backend/middleware"
	"github.com/contentforge/backend/seo"
	"github.com/contentforge/backend/stats"
	"github.com/contentforge/backend/store"
)

var (
	engine      *seo.Engine
	postStore   *store.Store
	usage       *stats.Storage
	reqStats    *logging.Statistics
	rateLimiter *middleware.RateLimiter
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load environment configuration
	loadEnv()

	// Set up Gin mode
	setupGinMode()

	dataDir := envOr("DATA_DIR", "data")
	dbPath := envOr("DB_PATH", filepath.Join(dataDir, "posts.db"))

	// Initialize services
	var err error
	postStore, err = store.Open(dbPath)
	if err != nil {
		log.Fatal("Failed to open post store: ", err)
	}
	defer postStore.Close()

	usage, err = stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize usage stats: ", err)
	}

	engine = seo.NewEngine()
	reqStats = logging.Initialize()
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	// Initialize Gin router
	r := gin.Default()

	// Add middlewares
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.TrackRequests(reqStats))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Scoring and suggestion endpoints
		api.POST("/seo/score", scorePost)
		api.POST("/seo/suggestions", suggestForPost)
		api.POST("/seo/auto-generate", autoGenerateFields)
		api.POST("/seo/validate", validateFields)

		// Post management endpoints
		api.GET("/posts", listPosts)
		api.POST("/posts", createPost)
		api.GET("/posts/:slug", getPost)
		api.PUT("/posts/:slug", updatePost)
		api.DELETE("/posts/:slug", deletePost)

		// Statistics endpoint
		api.GET("/statistics", getStatistics)
	}

	// Get port from environment variable or use default
	port := envOr("PORT", "8082")

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
