package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/jurnal-kelas-api/api/swagger"
	"github.com/noah-isme/jurnal-kelas-api/internal/handler"
	internalmiddleware "github.com/noah-isme/jurnal-kelas-api/internal/middleware"
	"github.com/noah-isme/jurnal-kelas-api/internal/repository"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/cache"
	"github.com/noah-isme/jurnal-kelas-api/pkg/config"
	"github.com/noah-isme/jurnal-kelas-api/pkg/database"
	"github.com/noah-isme/jurnal-kelas-api/pkg/database/migrations"
	"github.com/noah-isme/jurnal-kelas-api/pkg/export"
	"github.com/noah-isme/jurnal-kelas-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/jurnal-kelas-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/jurnal-kelas-api/pkg/middleware/requestid"
)

// @title Jurnal Kelas API
// @version 1.0.0
// @description Classroom administration backend: rosters, daily grades and attendance, notes, journals and monthly reports.
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply pending migrations and exit")
	flag.Parse()

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
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	version, err := migrations.Migrate(ctx, db.DB, logr)
	if err != nil {
		if *migrateOnly {
			logr.Fatal("migration failed", zap.Error(err))
		}
		logr.Error("migration failed, serving with the existing schema", zap.Error(err))
	} else {
		logr.Info("schema up to date", zap.Int64("version", version))
	}
	if *migrateOnly {
		return
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, running without cache", zap.Error(err))
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, redisClient != nil)
	cacheSvc.Reset(ctx)

	passwordHash := cfg.Admin.PasswordHash
	if passwordHash == "" && cfg.Admin.Password != "" {
		passwordHash, err = service.HashPassword(cfg.Admin.Password)
		if err != nil {
			logr.Fatal("failed to hash admin password", zap.Error(err))
		}
	}

	validate := service.NewValidator()
	loc := cfg.Location()
	renderer := export.NewRegistry()

	classRepo := repository.NewClassRepository(db)
	authSvc := service.NewAuthService(service.AuthConfig{
		Username:     cfg.Admin.Username,
		PasswordHash: passwordHash,
		Secret:       cfg.Session.Secret,
		TTL:          cfg.Session.TTL,
		Issuer:       "jurnal-kelas-api",
	}, validate, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr)
	studentSvc := service.NewStudentService(repository.NewStudentRepository(db), cacheSvc, validate, logr)
	dailySvc := service.NewDailyStateService(repository.NewDailyStateRepository(db), classRepo, cacheSvc, validate, logr, loc)
	noteSvc := service.NewNoteService(repository.NewNoteRepository(db), validate, logr)
	behaviorSvc := service.NewBehaviorService(repository.NewBehaviorRepository(db), validate, logr, loc)
	journalSvc := service.NewJournalService(repository.NewJournalRepository(db), renderer, cacheSvc, metrics, validate, logr)
	reportSvc := service.NewReportService(repository.NewReportRepository(db), renderer, metrics, validate, logr)
	historySvc := service.NewHistoryService(repository.NewHistoryRepository(db), cacheSvc, logr)
	cleanupSvc := service.NewCleanupService(repository.NewCleanupRepository(db), cacheSvc, metrics, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.ResponseMeta())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, handler.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}),
		Class:      handler.NewClassHandler(classSvc),
		Student:    handler.NewStudentHandler(studentSvc),
		DailyState: handler.NewDailyStateHandler(dailySvc),
		Note:       handler.NewNoteHandler(noteSvc),
		Behavior:   handler.NewBehaviorHandler(behaviorSvc),
		Journal:    handler.NewJournalHandler(journalSvc),
		Report:     handler.NewReportHandler(reportSvc),
		History:    handler.NewHistoryHandler(historySvc),
		Cleanup:    handler.NewCleanupHandler(cleanupSvc),
		Health:     handler.NewHealthHandler(db, metrics),
	}, internalmiddleware.Session(authSvc, cfg.Session.CookieName), cfg.StaticDir)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
