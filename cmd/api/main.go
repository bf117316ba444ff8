package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/booking"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/infra/apiclient"
	"github.com/BruksfildServices01/salon-booking/internal/infra/store"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	timezone.SetDefault(cfg.SalonTimezone)

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// ======================================================
	// AUDIT
	// ======================================================
	var (
		db   *gorm.DB
		sink audit.Sink
	)
	if cfg.DBUrl != "" {
		db, err = dbpkg.Open(cfg.DBUrl, !cfg.IsProduction())
		if err != nil {
			log.Fatal("database", zap.Error(err))
		}
		defer dbpkg.Close(db)
		sink = audit.New(db)
	} else {
		log.Warn("DATABASE_URL not set, audit events go to the log only")
		sink = audit.NewLogSink(log)
	}
	dispatcher := audit.NewDispatcher(sink, log)

	// ======================================================
	// BOOKING DRAFTS
	// ======================================================
	var drafts booking.DraftStore
	if cfg.RedisAddr != "" {
		client, err := store.NewClient(startCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer client.Close()
		drafts = store.NewRedisDrafts(client, cfg.DraftTTL)
	} else {
		log.Warn("REDIS_ADDR not set, booking drafts are kept in memory")
		drafts = booking.NewMemoryStore()
	}
	registry := booking.NewRegistry(drafts, log)

	// ======================================================
	// SALON API
	// ======================================================
	api := apiclient.New(apiclient.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.APITimeout,
		RateLimit: cfg.APIRateLimit,
		Retries:   cfg.APIRetries,
		Logger:    log,
	})

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config: cfg,
		Logger: log,
		API:    api,
		DB:     db,
		Audit:  dispatcher,
		Drafts: registry,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	registry.Shutdown()
	dispatcher.Close()
}
