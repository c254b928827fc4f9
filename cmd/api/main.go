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

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/config"
	dbpkg "github.com/BruksfildServices01/nail-salon/internal/db"
	"github.com/BruksfildServices01/nail-salon/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/nail-salon/internal/infra/repository"
	"github.com/BruksfildServices01/nail-salon/internal/logger"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/notify"
	"github.com/BruksfildServices01/nail-salon/internal/payments"
	"github.com/BruksfildServices01/nail-salon/internal/routes"
	"github.com/BruksfildServices01/nail-salon/internal/seed"
	"github.com/BruksfildServices01/nail-salon/internal/storage"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
	ucBooking "github.com/BruksfildServices01/nail-salon/internal/usecase/booking"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/schedule"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	// ======================================================
	// SEEDS
	// ======================================================
	if _, err := seed.Services(ctx, db, cfg.ServicesSeedFile, log); err != nil {
		log.Warn().Err(err).Msg("service catalog not seeded")
	}
	if err := seed.Admin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.Warn().Err(err).Msg("admin user not seeded")
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clock := timezone.SystemClock(cfg.Timezone)
	m := metrics.New()

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	var scheduleCache schedule.Cache
	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		scheduleCache = cache.NewScheduleRedisCache(client, cfg.ScheduleCacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("schedule cache enabled")
	}

	store := schedule.NewStore(infraRepo.NewScheduleGormRepository(db), scheduleCache, dispatcher, log)
	bookings := infraRepo.NewBookingGormRepository(db)
	settings := infraRepo.NewSettingsGormRepository(db, cfg.DepositCents)
	expire := ucBooking.NewExpireStalePending(bookings, dispatcher, m, clock, log)

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Clock:    clock,
		Audit:    dispatcher,
		Metrics:  m,
		Schedule: store,
		Bookings: bookings,
		Settings: settings,
		Expire:   expire,
	}

	if cfg.S3Bucket != "" {
		s3cfg := storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		}
		deps.Objects = storage.NewS3Store(storage.NewS3Client(s3cfg), s3cfg)
		log.Info().Str("bucket", cfg.S3Bucket).Msg("gallery storage enabled")
	}

	mp, err := payments.NewMercadoPagoFromToken(cfg.MercadoPagoAccessToken, cfg.MercadoPagoNotificationURL)
	if err != nil {
		log.Warn().Err(err).Msg("mercadopago disabled")
	}
	deps.MercadoPago = mp

	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegramFromToken(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("telegram alerts disabled")
		} else {
			deps.Telegram = tg
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweeper := ucBooking.NewSweeper(expire, cfg.ExpirySweepInterval, log)
	go sweeper.Run(ctx)

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
