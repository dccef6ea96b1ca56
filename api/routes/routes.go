package routes

import (
	"net/http"
	"path/filepath"

	"github.com/GGlistano/backbolt/internal/config"
	"github.com/GGlistano/backbolt/internal/handlers"
	"github.com/GGlistano/backbolt/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, funnelHandler *handlers.FunnelHandler) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Funnel API
	api := router.Group("/api")
	{
		api.POST("/comprar", funnelHandler.SubmitPurchase)
		api.POST("/upsell1", funnelHandler.SubmitUpsell(1))
		api.POST("/upsell2", funnelHandler.SubmitUpsell(2))
		api.POST("/upsell3", funnelHandler.SubmitUpsell(3))
		api.POST("/validate-token", funnelHandler.ValidateToken)
	}

	// Funnel landing pages served from public/
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Rota não encontrada"})
			return
		}
		page := filepath.Clean(c.Request.URL.Path)
		if page == "/" {
			page = "/index.html"
		}
		c.File(filepath.Join("public", page))
	})

	return router
}
