package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/task-manager/config"
	"github.com/ErlanBelekov/task-manager/internal/auth"
	"github.com/ErlanBelekov/task-manager/internal/email"
	"github.com/ErlanBelekov/task-manager/internal/health"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/storage"
	ctxlog "github.com/ErlanBelekov/task-manager/internal/log"
	"github.com/ErlanBelekov/task-manager/internal/metrics"
	"github.com/ErlanBelekov/task-manager/internal/stats"
	httptransport "github.com/ErlanBelekov/task-manager/internal/transport/http"
	"github.com/ErlanBelekov/task-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("storage: %v", err)
	}
	defer backend.Close()

	authService, err := auth.NewService(auth.Config{
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   cfg.JWTTTL,
		Issuer:     cfg.JWTIssuer,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		stop()
		log.Fatalf("auth: %v", err)
	}

	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Users
	userUsecase := usecase.NewUserUsecase(backend.Users, authService, sender, logger)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Tasks
	taskUsecase := usecase.NewTaskUsecase(backend.Tasks)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(cfg.StorageDriver, backend.DB, logger, prometheus.DefaultRegisterer)

	collector, err := stats.NewCollector(backend.Users, backend.Tasks, cfg.StatsCron, logger)
	if err != nil {
		stop()
		log.Fatalf("stats: %v", err)
	}
	go collector.Start(ctx)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(httptransport.RouterConfig{
			Logger:      logger,
			UserHandler: userHandler,
			TaskHandler: taskHandler,
			Verifier:    authService,
			Users:       backend.Users,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
