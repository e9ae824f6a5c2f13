package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dapodiksmk/siswa-web/internal/config"
	"github.com/dapodiksmk/siswa-web/internal/database"
	"github.com/dapodiksmk/siswa-web/internal/handler"
	"github.com/dapodiksmk/siswa-web/internal/logger"
	"github.com/dapodiksmk/siswa-web/internal/middleware"
	"github.com/dapodiksmk/siswa-web/internal/repository"
	"github.com/dapodiksmk/siswa-web/internal/router"
	"github.com/dapodiksmk/siswa-web/internal/service"
	"github.com/dapodiksmk/siswa-web/internal/validator"
	"github.com/dapodiksmk/siswa-web/internal/view"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Dapodik Siswa Web")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	siswaRepo := repository.NewSiswaRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	sessionService := service.NewSessionService(rdb, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo)
	siswaService := service.NewSiswaService(siswaRepo)

	// ─── Initialize View Renderer ─────────────────────────────────────
	renderer, err := view.NewRenderer(cfg.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:  handler.NewAuthHandler(authService, sessionService, log),
		Page:  handler.NewPageHandler(),
		Siswa: handler.NewSiswaHandler(siswaService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(sessionService, handlers, renderer, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	// MethodOverride wraps the engine so form-tunneled PUT/DELETE are
	// rewritten before Gin's method-based route matching.
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: middleware.MethodOverride(r),
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
