package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alquileresmvp/rental-system/internal/api"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/config"
	rentalmongo "github.com/alquileresmvp/rental-system/internal/infrastructure/db/mongo"
	rentalredis "github.com/alquileresmvp/rental-system/internal/infrastructure/db/redis"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/notify"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/queue"
	"github.com/alquileresmvp/rental-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	// --- MongoDB ---
	mongoClient, db, err := rentalmongo.Connect(ctx, rentalmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis (booking lock) ---
	rdb, err := rentalredis.Connect(ctx, rentalredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Booking event pipeline ---
	var notifier queue.Notifier
	if cfg.AMQP.URL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp connection failed")
		}
		defer func() { _ = amqpNotifier.Close() }()
		notifier = amqpNotifier
		log.Info().Msg("booking events publishing to amqp")
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	dispatcher := queue.NewDispatcher(0, notifier, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Options{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		ListingTTL: cfg.Cache.ListingTTL,
		Events:     dispatcher,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
