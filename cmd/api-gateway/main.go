package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/boleta-api/api/swagger"
	"github.com/noah-isme/boleta-api/internal/handler"
	"github.com/noah-isme/boleta-api/internal/middleware"
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/repository"
	"github.com/noah-isme/boleta-api/internal/service"
	"github.com/noah-isme/boleta-api/pkg/cache"
	"github.com/noah-isme/boleta-api/pkg/config"
	"github.com/noah-isme/boleta-api/pkg/database"
	"github.com/noah-isme/boleta-api/pkg/export"
	"github.com/noah-isme/boleta-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/boleta-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/boleta-api/pkg/middleware/requestid"
)

// @title Boleta API
// @version 1.0.0
// @description Descriptive report-card service for preschool and primary grades
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Roster lookups degrade to uncached; everything else works.
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	lapsoRepo := repository.NewLapsoRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     "boleta-api",
	})
	rosterSvc := service.NewRosterService(rosterRepo, redisClient, metricsSvc, logr,
		cfg.Boletas.RosterCacheTTL, cfg.Boletas.RosterTimeout)
	notificationSvc := service.NewNotificationService(notificationRepo, logr, cfg.Notifications)
	boletaSvc := service.NewBoletaService(
		certRepo,
		attendanceRepo,
		lapsoRepo,
		rosterSvc,
		notificationSvc,
		export.NewPDFExporter(),
		validate,
		metricsSvc,
		logr,
		cfg.Boletas,
	)

	authHandler := handler.NewAuthHandler(authSvc)
	boletaHandler := handler.NewBoletaHandler(boletaSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/levels/classification", boletaHandler.Classify)
		protected.GET("/boletas/:studentId/lapsos/:lapsoId", boletaHandler.Load)
		protected.PUT("/boletas/:studentId/lapsos/:lapsoId", boletaHandler.Save)
		protected.GET("/boletas/:studentId/lapsos/:lapsoId/document", boletaHandler.Document)
		protected.GET("/boletas/:studentId/lapsos/:lapsoId/pdf", boletaHandler.PDF)

		reviewers := protected.Group("")
		reviewers.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleControlEstudios))
		{
			reviewers.GET("/boletas/queue", boletaHandler.Queue)
			reviewers.POST("/boletas/:studentId/lapsos/:lapsoId/review", boletaHandler.Review)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
