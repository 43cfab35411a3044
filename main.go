package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/auth"
	"github.com/flashcard-tracker/flashcard-tracker/config"
	"github.com/flashcard-tracker/flashcard-tracker/handlers"
	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/metrics"
	"github.com/flashcard-tracker/flashcard-tracker/middleware"
	"github.com/flashcard-tracker/flashcard-tracker/store"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	db, err := config.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.Env)
	if err != nil {
		return err
	}
	authMiddleware, err := issuer.EnsureValidToken()
	if err != nil {
		return err
	}

	m := metrics.New()
	h := handlers.NewDBHandler(store.New(db), issuer, m)
	mux := h.Routes(authMiddleware)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestID(zlog)(middleware.Access(m)(mux)))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		zlog.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	return nil
}
