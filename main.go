package main

import (
	"log"
	"net/http"

	"tcg-market/internal/api"
	"tcg-market/internal/config"
	"tcg-market/internal/database"
	"tcg-market/internal/repository"
	"tcg-market/internal/services"
	"tcg-market/internal/services/tcgio"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if cfg.TCGAPIKey == "" {
		log.Println("TCG_API_KEY not set; catalog requests will be unauthenticated and heavily rate limited")
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	store := repository.NewCardStore(db)
	catalog := tcgio.NewClient(cfg.TCGAPIBaseURL, cfg.TCGAPIKey)
	syncSvc := services.NewSyncService(catalog, store, cfg.SyncPageSize, cfg.SyncPageDelay)
	converter := services.NewCurrencyConverter(cfg.EURToUSDRate)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	api.SetupRoutes(apiGroup, db, syncSvc, converter)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
