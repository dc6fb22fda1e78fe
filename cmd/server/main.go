package main

import (
	"log"

	"github.com/dabidoe/hotspots-backend-go/internal/api"
	"github.com/dabidoe/hotspots-backend-go/internal/config"
	"github.com/dabidoe/hotspots-backend-go/internal/database"
	"github.com/dabidoe/hotspots-backend-go/internal/places"
	"github.com/dabidoe/hotspots-backend-go/internal/repository"
	"github.com/dabidoe/hotspots-backend-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	if cfg.PlacesAPIKey == "" {
		log.Printf("WARN GOOGLE_PLACES_API_KEY is not set; nearby lookups will fail")
	}

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// 组装服务
	fetcher := places.NewFetcher(cfg.PlacesAPIKey)
	cacheRepo := repository.NewCacheRepository(db)
	placesService := service.NewPlacesService(fetcher, cacheRepo, cfg)

	// 初始化路由
	router := api.SetupRouter(cfg, placesService)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
