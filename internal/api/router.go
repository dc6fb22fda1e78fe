package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dabidoe/hotspots-backend-go/internal/config"
	"github.com/dabidoe/hotspots-backend-go/internal/handler"
	"github.com/dabidoe/hotspots-backend-go/internal/middleware"
	"github.com/dabidoe/hotspots-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, placesService *service.PlacesService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hotspots Backend API is running",
		})
	})

	placesHandler := handler.NewPlacesHandler(placesService)
	cacheHandler := handler.NewCacheHandler(placesService)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 附近地点接口
		pl := api.Group("/places")
		pl.Use(middleware.RateLimit(60, time.Minute))
		{
			pl.GET("", placesHandler.Nearby)
		}

		// 缓存管理接口
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.GET("/cache/stats", cacheHandler.Stats)
			admin.POST("/cache/purge", cacheHandler.Purge)
		}
	}

	return r
}
