package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leshawn-rice/grabaphone/app/database"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler, masterKey string) *gin.Engine {
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
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, masterKey)

	return r
}

// setupRoutes configures all the application routes.
func setupRoutes(r *gin.Engine, handler *Handler, masterKey string) {
	r.GET("/health", handler.GetHealth)

	// Key generation is open so new consumers can self-register.
	r.POST("/api/keys", handler.CreateAPIKey)

	query := r.Group("/api")
	query.Use(keyAuthMiddleware(handler.apiKeyRepo, masterKey))
	{
		query.GET("/devices", handler.GetDevices)
		query.GET("/manufacturers", handler.GetManufacturers)
	}

	admin := r.Group("/api")
	admin.Use(masterAuthMiddleware(masterKey))
	{
		admin.POST("/manufacturers", handler.CreateManufacturer)
		admin.POST("/devices", handler.CreateDevice)
		admin.PATCH("/devices/:id", handler.UpdateDevice)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Grabaphone",
			"description": "Phone catalog scraper with a queryable device API",
			"endpoints": map[string]string{
				"health":        "/health",
				"keys":          "/api/keys (POST)",
				"devices":       "/api/devices (requires X-API-Key header)",
				"manufacturers": "/api/manufacturers (requires X-API-Key header)",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// extractKey pulls the API key from the X-API-Key header or an
// Authorization: Bearer header.
func extractKey(c *gin.Context) string {
	key := c.GetHeader("X-API-Key")
	if key == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			key = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	return key
}

// keyAuthMiddleware accepts the master key or any key present in the store.
func keyAuthMiddleware(apiKeyRepo database.APIKeyRepository, masterKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := extractKey(c)

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != masterKey {
			exists, err := apiKeyRepo.KeyExists(providedKey)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
				c.Abort()
				return
			}
			if !exists {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid API key",
					"message": "The provided API key is not valid",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// masterAuthMiddleware protects the write endpoints; only the master key is
// accepted.
func masterAuthMiddleware(masterKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractKey(c) != masterKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Master key required",
				"message": "Write endpoints require the master API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
