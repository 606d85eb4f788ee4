package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/seo-auditor/backend/fetch"
	"github.com/seo-auditor/backend/logging"
	"github.com/seo-auditor/backend/middleware"
	"github.com/seo-auditor/backend/stats"
	"github.com/seo-auditor/backend/vitals"
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

func main() {
	// Load environment configuration
	loadEnv()

	// Set up Gin mode
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	storage, err := stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize stats storage:", err)
	}

	// Initialize statistics
	statistics := logging.Initialize()

	h := &handlers{
		pages:       fetch.New(fetch.DefaultTimeout, fetch.DefaultUserAgent),
		schemaPages: fetch.New(fetch.DefaultTimeout, "Mozilla/5.0 (SEO-Auditor)"),
		vitals:      vitals.New(os.Getenv("PSI_API_KEY")),
	}

	r := newRouter(h, statistics, storage)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newRouter(h *handlers, statistics *logging.Statistics, storage *stats.Storage) *gin.Engine {
	r := gin.Default()

	// Add middlewares
	r.Use(middleware.ErrorHandler())

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

	r.Use(middleware.StatsTracker(statistics, storage))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Statistics endpoint
	r.GET("/statistics", func(c *gin.Context) {
		c.JSON(http.StatusOK, statistics.GetStatistics())
	})

	// SEO audit endpoints
	r.GET("/fetch-page", h.fetchPage)
	r.POST("/analyze-seo", h.analyzeSEO)
	r.POST("/analyze-seo-url", h.analyzeSEOURL)
	r.GET("/robots-check", h.robotsCheck)
	r.POST("/web-vitals", h.webVitals)
	r.POST("/schema-audit", h.schemaAudit)

	return r
}
