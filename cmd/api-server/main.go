package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dispusip/arsip-api/api/swagger"
	"github.com/dispusip/arsip-api/internal/handler"
	"github.com/dispusip/arsip-api/internal/middleware"
	"github.com/dispusip/arsip-api/internal/repository"
	"github.com/dispusip/arsip-api/internal/service"
	"github.com/dispusip/arsip-api/pkg/cache"
	"github.com/dispusip/arsip-api/pkg/config"
	"github.com/dispusip/arsip-api/pkg/database"
	"github.com/dispusip/arsip-api/pkg/logger"
	corsmiddleware "github.com/dispusip/arsip-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dispusip/arsip-api/pkg/middleware/requestid"
)

// @title Arsip API
// @version 1.0.0
// @description Records-management backend for archival filing (klasifikasi, hal, berkas)
// @BasePath /api
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, redisErr := cache.NewRedis(cfg.Redis)
		if redisErr != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(redisErr))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)

	klasifikasiRepo := repository.NewKlasifikasiRepository(db)
	halRepo := repository.NewHalRepository(db)
	berkasRepo := repository.NewBerkasRepository(db)
	arsipRepo := repository.NewArsipRepository(db)

	validate := validator.New()
	arsipSvc := service.NewArsipService(berkasRepo, arsipRepo, klasifikasiRepo, halRepo, cacheSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(berkasRepo, klasifikasiRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(berkasRepo, cfg.Export.Title, logr)

	klasifikasiHandler := handler.NewKlasifikasiHandler(klasifikasiRepo)
	arsipHandler := handler.NewArsipHandler(arsipSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/hello", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Hello API"})
		})

		api.GET("/klasifikasi", klasifikasiHandler.List)

		api.GET("/berkas", arsipHandler.List)
		api.GET("/berkas/next-number", arsipHandler.NextNumber)

		api.POST("/arsip/store", arsipHandler.Store)
		api.GET("/arsip/:id", arsipHandler.Show)
		api.PUT("/arsip/:id", arsipHandler.Update)
		api.DELETE("/arsip/:id", arsipHandler.Delete)

		api.GET("/export/arsip", exportHandler.DaftarArsip)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/klasifikasi", dashboardHandler.Klasifikasi)
			dashboard.GET("/summary", dashboardHandler.Summary)
			dashboard.GET("/stats/range", dashboardHandler.StatsRange)
			dashboard.GET("/top-klasifikasi", dashboardHandler.TopKlasifikasi)
			dashboard.GET("/keamanan-per-klasifikasi", dashboardHandler.KeamananPerKlasifikasi)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
