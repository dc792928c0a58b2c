package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/obra-measure/internal/config"
	"github.com/georgemunganga/obra-measure/internal/database"
	"github.com/georgemunganga/obra-measure/internal/metrics"
	"github.com/georgemunganga/obra-measure/internal/modules/assignment"
	"github.com/georgemunganga/obra-measure/internal/modules/auth"
	"github.com/georgemunganga/obra-measure/internal/modules/location"
	"github.com/georgemunganga/obra-measure/internal/modules/measurement"
	"github.com/georgemunganga/obra-measure/internal/modules/typology"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database ready")

	m := metrics.New()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", m.Handler())

	var authService auth.Service
	if cfg.Auth.JWTSecret != "" {
		authService, err = auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
		if err != nil {
			logger.Error("configuring auth", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("auth.jwt_secret is empty; project routes are unauthenticated")
	}

	// ── Project-scoped modules ──────────────────────────────
	typologyService := typology.NewService(typology.NewPostgresRepository(db))
	locationService := location.NewService(location.NewPostgresRepository(db), cfg.Generator.FloorPrefix, m, logger)
	assignmentService := assignment.NewService(assignment.NewPostgresRepository(db), m, logger)
	measurementService := measurement.NewService(measurement.NewPostgresRepository(db), m, logger)

	router.Route("/api/v1/projects/{project_id}", func(r chi.Router) {
		if authService != nil {
			r.Use(auth.Middleware(authService))
		}
		typology.NewHandler(typologyService).RegisterRoutes(r)
		location.NewHandler(locationService).RegisterRoutes(r)
		assignment.NewHandler(assignmentService).RegisterRoutes(r)
		measurement.NewHandler(measurementService).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("obra-measure API server starting", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
