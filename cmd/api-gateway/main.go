package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gd-level-archive/api/swagger"
	"github.com/noah-isme/gd-level-archive/internal/handler"
	"github.com/noah-isme/gd-level-archive/internal/middleware"
	"github.com/noah-isme/gd-level-archive/internal/repository"
	"github.com/noah-isme/gd-level-archive/internal/service"
	"github.com/noah-isme/gd-level-archive/pkg/cache"
	"github.com/noah-isme/gd-level-archive/pkg/config"
	"github.com/noah-isme/gd-level-archive/pkg/database"
	"github.com/noah-isme/gd-level-archive/pkg/logger"
	corsmiddleware "github.com/noah-isme/gd-level-archive/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gd-level-archive/pkg/middleware/requestid"
	"github.com/noah-isme/gd-level-archive/pkg/songlib"
	"github.com/noah-isme/gd-level-archive/pkg/storage"
)

// @title GD Level Archive API
// @version 1.0.0
// @description Search the level catalog, export levels as GMD and resolve level songs.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open catalog database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	httpClient := &http.Client{Timeout: cfg.Songs.HTTPTimeout}

	library, err := songlib.Load(context.Background(), httpClient, cfg.Songs.LibraryURL, cfg.Songs.LibraryFile)
	if err != nil {
		logr.Warn("music library unavailable, CDN songs will use default names", zap.Error(err))
	} else {
		logr.Info("music library loaded", zap.String("version", library.Version()), zap.Int("songs", library.Len()))
	}

	var songCache *service.CacheService
	if cfg.Songs.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, song info cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, "song", logr)
			defer cacheRepo.Close() //nolint:errcheck
			songCache = service.NewCacheService(cacheRepo, metricsSvc, cfg.Songs.CacheTTL, logr, true)
		}
	}

	levelRepo := repository.NewLevelRepository(db)
	levelSvc := service.NewLevelService(levelRepo, nil, metricsSvc, service.LevelSearchConfig{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}, logr)
	exportSvc := service.NewExportService(levelSvc, logr)
	gmdSvc := service.NewGMDService(storage.NewSaveDirectory(cfg.Saves.Dir), service.GMDCacheConfig{
		Size: cfg.Saves.CacheSize,
		TTL:  cfg.Saves.CacheTTL,
	}, metricsSvc, logr)
	songSvc := service.NewSongService(library, httpClient, songCache, metricsSvc, service.SongConfig{
		CDNBaseURL: cfg.Songs.CDNBaseURL,
		InfoURL:    cfg.Songs.InfoURL,
		InfoSecret: cfg.Songs.InfoSecret,
		CacheTTL:   cfg.Songs.CacheTTL,
	}, logr)

	levelHandler := handler.NewLevelHandler(levelSvc, exportSvc)
	gmdHandler := handler.NewGMDHandler(gmdSvc)
	songHandler := handler.NewSongHandler(songSvc, logr)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/levels", levelHandler.List)
	api.GET("/levels/export", levelHandler.Export)
	api.GET("/levels/:id", levelHandler.Get)
	api.GET("/levels/:id/gmd", gmdHandler.Download)
	api.GET("/songs/:id", songHandler.Get)
	api.GET("/songs/:id/download", songHandler.Download)
	if metricsSvc != nil {
		api.GET("/stats", metricsHandler.Stats)
	}

	r.GET("/download/:id", gmdHandler.Download)
	r.GET("/downloadSong/:id", songHandler.Download)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "db_driver", db.DriverName())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
