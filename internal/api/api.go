// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prasetyowira/stockcast/backend-go/internal/api/handlers"
	"github.com/prasetyowira/stockcast/backend-go/internal/api/middleware"
	"github.com/prasetyowira/stockcast/backend-go/internal/service"
)

type Services struct {
	ForecastService *service.ForecastService
	ReorderService  *service.ReorderService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/forecast")
			{
				forecastGroup.GET("/:productId", forecastHandler.GetForecast)
				forecastGroup.GET("/:productId/compare", forecastHandler.CompareAlgorithms)
				forecastGroup.GET("/:productId/chart", forecastHandler.GetChart)
				forecastGroup.POST("/batch", forecastHandler.BatchForecast)
			}
		}

		if services.ReorderService != nil {
			reorderHandler := handlers.NewReorderHandler(services.ReorderService)
			reorderGroup := apiGroup.Group("/reorder")
			{
				reorderGroup.GET("/suggestions", reorderHandler.GetSuggestions)
				reorderGroup.POST("/consolidate", reorderHandler.Consolidate)
				reorderGroup.GET("/drafts", reorderHandler.ListDrafts)
				reorderGroup.GET("/suggest/:productId", reorderHandler.SuggestRule)

				rulesGroup := reorderGroup.Group("/rules")
				{
					rulesGroup.GET("", reorderHandler.ListRules)
					rulesGroup.POST("", reorderHandler.CreateRule)
					rulesGroup.GET("/:id", reorderHandler.GetRule)
					rulesGroup.PUT("/:id", reorderHandler.UpdateRule)
					rulesGroup.DELETE("/:id", reorderHandler.DeleteRule)
				}
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
