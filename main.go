package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/config"
	"github.com/robalobadob/wordladder/internal/engine"
	"github.com/robalobadob/wordladder/internal/httpserver"
	"github.com/robalobadob/wordladder/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := store.Open(ctx, cfg.SessionStore, cfg.SessionDSN)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("failed to open session store")
	}
	defer closeSessions()

	eng, closeCache, err := engine.FromConfig(ctx, cfg, sessions)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.CacheBackend).Msg("failed to open artifact cache")
	}
	defer closeCache()

	// serve /health while the catalog builds
	go func() {
		if err := eng.Warm(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("ladder engine failed to warm")
			stop()
		}
	}()
	go store.RunJanitor(ctx, sessions, cfg.SessionTTL, 0, time.Now)

	srv := httpserver.New(eng, httpserver.Options{
		JWTSecret:    cfg.JWTSecret,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.SessionStore).Msg("starting ladder server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("ladder server stopped")
}
