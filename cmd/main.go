package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/api/handler"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/credential"
	"complaintbox/backend/internal/feed"
	"complaintbox/backend/internal/storage"
	"complaintbox/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func setupDependencies(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	if !cfg.Redis.Enabled() {
		log.Info("REDIS_ADDR not set, running without redis")
		return db, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Info("Database and Redis connections established")
	return db, rdb
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel)
	log.Info("Starting complaintbox backend...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, rdb := setupDependencies(ctx, cfg, log)
	s := storage.NewStorageService(db)
	hasher := credential.NewHasher(cfg.BcryptCost)

	hub := feed.NewHub(rdb, log)
	go hub.Run(ctx)

	publishers := complaint.Publishers{hub}
	if cfg.Telegram.Enabled() {
		notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID, cfg.Telegram.Lang, log)
		if err != nil {
			log.WithError(err).Warn("Telegram notifications disabled")
		} else {
			publishers = append(publishers, notifier)
		}
	}

	complaintSvc := complaint.NewService(s, hasher, publishers, log)
	authSvc := auth.NewService(s, hasher, cfg.Session.Secret, cfg.Session.TTL)
	analyticsSvc := analysis.NewService(s)

	// Both rates were checked by cfg.Validate.
	trackRate, _ := limiter.NewRateFromFormatted(cfg.RateLimit.Track)
	loginRate, _ := limiter.NewRateFromFormatted(cfg.RateLimit.Login)

	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.NewHandler(complaintSvc, authSvc, analyticsSvc, hub, s, log, handler.Options{
		CookieSecure:   cfg.Session.CookieSecure,
		SessionTTL:     cfg.Session.TTL,
		AllowedOrigins: cfg.CORSOrigins,
		MetricsPath:    cfg.MetricsPath,
		LimiterStore:   handler.NewLimiterStore(rdb, log),
		TrackRate:      trackRate,
		LoginRate:      loginRate,
	})

	var root http.Handler = handler.NewRouter(h)
	if len(cfg.CORSOrigins) > 0 {
		root = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", handler.RequestIDHeader},
			ExposedHeaders:   []string{handler.RequestIDHeader, "Content-Disposition"},
			AllowCredentials: true,
		}).Handler(root)
	}

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        root,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Error("Closing database")
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Error("Closing redis")
		}
	}
}
