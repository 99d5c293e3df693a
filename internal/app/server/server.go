package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/employees"
	"paydesk/internal/domain/ledger"
	"paydesk/internal/domain/submissions"
	"paydesk/internal/domain/timeclock"
	"paydesk/internal/platform/config"
	"paydesk/internal/platform/db"
	"paydesk/internal/platform/locks"
	"paydesk/internal/platform/metrics"
	authhandler "paydesk/internal/transport/http/handlers/auth"
	employeeshandler "paydesk/internal/transport/http/handlers/employees"
	hourshandler "paydesk/internal/transport/http/handlers/hours"
	reportshandler "paydesk/internal/transport/http/handlers/reports"
	timeclockhandler "paydesk/internal/transport/http/handlers/timeclock"
	"paydesk/internal/transport/http/middleware"
)

const maxBodyBytes = 1 << 20

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	if err := db.Seed(ctx, pool, cfg); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}

	ledgerStore := ledger.NewPGStore(pool)
	employeeStore := employees.NewStore(pool)
	keyed := locks.NewKeyed()

	clockService := timeclock.NewService(ledgerStore, employeeStore, keyed)
	submitService := submissions.NewService(ledgerStore, submissions.NewLegacyTable(cfg.LegacyHoursCSV), keyed)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(maxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(collector.Snapshot())
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.With(middleware.RequireAuth).Get("/auth/me", authHandler.HandleMe)

		employeeshandler.NewHandler(employeeStore).RegisterRoutes(r)
		timeclockhandler.NewHandler(clockService).RegisterRoutes(r)
		hourshandler.NewHandler(submitService, ledgerStore).RegisterRoutes(r)
		reportshandler.NewHandler(ledgerStore).RegisterRoutes(r)
	})

	slog.Info("paydesk server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
