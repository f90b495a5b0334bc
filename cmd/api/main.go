package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if zlog.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if !timezone.IsValid(cfg.Timezone) {
		zlog.Warn("unknown APP_TIMEZONE, falling back to UTC", zap.String("timezone", cfg.Timezone))
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), zlog)

	var slotCache cache.SlotCache = cache.NoopCache{}
	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			slotCache = cache.NewRedisCache(rdb, cfg.SlotCacheTTL, zlog)
			zlog.Info("slot cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	router := routes.NewRouter(routes.Dependencies{
		Config:  cfg,
		DB:      db,
		Repo:    repository.NewBookingGormRepository(db),
		Tx:      repository.NewGormTransactor(db),
		Cache:   slotCache,
		Audit:   auditDispatcher,
		Metrics: metrics.New("barber_booking"),
		Log:     zlog,
		Loc:     loc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Addr()), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
