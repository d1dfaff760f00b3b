package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP engine with all routes configured.
func NewServer(handler *Handler, apiAccessKey, version string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey, version)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey, version string) {
	// Public read endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/api/articles", handler.ListArticles)

	// Curation endpoints (conditionally protected with authentication)
	admin := r.Group("/api")
	if apiAccessKey != "" {
		admin.Use(authMiddleware(apiAccessKey))
		slog.Info("Curation endpoints protected with API key authentication")
	} else {
		slog.Warn("Curation endpoints enabled without authentication (API_ACCESS_KEY not set)")
	}
	{
		admin.GET("/raw_articles", handler.ListRawArticles)
		admin.GET("/logs", handler.GetLogs)
		admin.POST("/ingest", handler.RunIngestion)
		admin.POST("/raw_articles/:id/summarize", handler.Summarize)
		admin.POST("/raw_articles/:id/structure", handler.Structure)
		admin.POST("/raw_articles/:id/sections", handler.SaveSections)
		admin.POST("/raw_articles/:id/approve", handler.Approve)
		admin.POST("/raw_articles/:id/reject", handler.Reject)
		admin.POST("/raw_articles/:id/publish", handler.PublishFinal)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "NextGen Technologies Portal",
			"version":     version,
			"description": "Tech news ingestion and curation pipeline with RSS and arXiv connectors",
			"endpoints": map[string]string{
				"articles":     "/api/articles",
				"raw_articles": "/api/raw_articles",
				"logs":         "/api/logs",
				"ingest":       "/api/ingest (POST, optional ?category=)",
				"health":       "/health",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware validates the API key from the X-API-Key header or an
// Authorization: Bearer token.
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
