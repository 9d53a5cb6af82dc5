package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/config"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/infra"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/router"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for the async catalog sync. The catalog capability is
	// probed once here, at the composition root.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	codigoRepo := repository.NewCodigoRepository(db)
	syncSvc := service.NewSyncService(codigoRepo, infra.HasCatalogoCodigos(db))
	worker.StartWorkerPool(ctx, rdb, worker.NewSyncWorker(syncSvc, rdb), cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("rrhh backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
