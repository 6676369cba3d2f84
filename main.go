package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ai-visibility/backend/analyzer"
	"github.com/ai-visibility/backend/config"
	"github.com/ai-visibility/backend/logging"
	"github.com/ai-visibility/backend/middleware"
	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/platform"
)

var engine *analyzer.Analyzer

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load(os.Getenv("AIVIS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	platforms := platform.Build(context.Background(), cfg.Platforms)
	if len(platforms) == 0 {
		log.Println("No answer platforms configured, visibility checks will be estimated")
	}

	engine, err = analyzer.New(analyzer.Options{
		Platforms:             platforms,
		MaxQueriesPerPlatform: cfg.Engine.MaxQueriesPerPlatform,
		QueryTimeout:          cfg.Engine.QueryTimeout,
		ReportCacheTTL:        cfg.Engine.ReportCacheTTL,
		MaxCachedReports:      cfg.Engine.MaxCachedReports,
		RecommendationLimit:   cfg.Engine.RecommendationLimit,
		DataDir:               cfg.Engine.DataDir,
	})
	if err != nil {
		log.Fatalf("Failed to initialize analyzer: %v", err)
	}

	stats := logging.Initialize()
	rateLimiter := middleware.NewRateLimiter(
		middleware.NewMemoryStore(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

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

	r.Use(middleware.StatsMiddleware(stats))

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/analyze", analyzePage)
		api.POST("/visibility", checkVisibility)

		// Statistics endpoints
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, stats.GetStatistics())
		})
		api.GET("/statistics/engine", func(c *gin.Context) {
			if month := c.Query("month"); month != "" {
				monthly, ok := engine.GetMonthlyStats(month)
				if !ok {
					c.JSON(http.StatusNotFound, gin.H{
						"error": "no statistics recorded for " + month,
					})
					return
				}
				c.JSON(http.StatusOK, monthly)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"current": engine.GetStats(),
				"months":  engine.GetStatsMonths(),
			})
		})
	}

	// Flush state on SIGINT/SIGTERM before exiting
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Println("Shutting down, flushing statistics")
		engine.Shutdown()
		stats.Save()
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on http://localhost%s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func analyzePage(c *gin.Context) {
	var page models.PageRecord
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page record provided",
		})
		return
	}

	report, err := engine.AnalyzePage(&page)
	if err != nil {
		status := http.StatusInternalServerError
		if err == analyzer.ErrCannotAnalyze {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": "Failed to analyze page: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

func checkVisibility(c *gin.Context) {
	var request struct {
		Domain string            `json:"domain" binding:"required"`
		Page   models.PageRecord `json:"page"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid visibility request provided",
		})
		return
	}
	c.Set(middleware.ScanDomainKey, request.Domain)

	report, err := engine.AnalyzeVisibility(c.Request.Context(), request.Domain, &request.Page)
	if err != nil {
		status := http.StatusInternalServerError
		if err == analyzer.ErrCannotAnalyze {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": "Failed to check visibility: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
