package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acadly/timetable-api/api/swagger"
	"github.com/acadly/timetable-api/internal/handler"
	"github.com/acadly/timetable-api/internal/middleware"
	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/internal/repository"
	"github.com/acadly/timetable-api/internal/service"
	"github.com/acadly/timetable-api/pkg/cache"
	"github.com/acadly/timetable-api/pkg/config"
	"github.com/acadly/timetable-api/pkg/database"
	"github.com/acadly/timetable-api/pkg/logger"
	corsmiddleware "github.com/acadly/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/acadly/timetable-api/pkg/middleware/requestid"
)

// @title Acadly Timetable API
// @version 0.1.0
// @description Scheduling conflict engine and faculty workload accounting
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Workload.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, workload cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Workload.CacheTTL, logr, true)
		}
	}

	entryRepo := repository.NewScheduleEntryRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	examPeriodRepo := repository.NewExamPeriodRepository(db)
	assignmentRepo := repository.NewSubjectAssignmentRepository(db)
	settingsRepo := repository.NewWorkloadSettingsRepository(db)

	conflictSvc := service.NewConflictService(entryRepo, batchRepo, holidayRepo, examPeriodRepo, metricsSvc, nil, logr)
	workloadSvc := service.NewWorkloadService(assignmentRepo, settingsRepo, cacheSvc, cfg.Workload, nil, logr)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)

	scheduleHandler := handler.NewScheduleEntryHandler(conflictSvc)
	workloadHandler := handler.NewWorkloadHandler(workloadSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))

	canSchedule := middleware.RequireRoles(models.RoleAdmin, models.RoleScheduler)

	api.POST("/conflicts/check", scheduleHandler.CheckConflicts)

	api.GET("/schedule-entries", scheduleHandler.List)
	api.POST("/schedule-entries", canSchedule, scheduleHandler.Create)
	api.PUT("/schedule-entries/:id", canSchedule, scheduleHandler.Update)
	api.DELETE("/schedule-entries/:id", canSchedule, scheduleHandler.Deactivate)

	api.GET("/batches/:id/schedule-entries", scheduleHandler.ListByBatch)

	facultyRead := middleware.RequireRoles(models.RoleAdmin, models.RoleScheduler, "SELF")
	api.GET("/faculty/:id/schedule-entries", facultyRead, scheduleHandler.ListByFaculty)
	api.GET("/faculty/:id/workload", facultyRead, workloadHandler.GetWorkload)
	api.POST("/faculty/:id/workload/check-admission", canSchedule, workloadHandler.CheckAdmission)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
