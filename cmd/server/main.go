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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/maxviazov/football-sim/internal/config"
	"github.com/maxviazov/football-sim/internal/handler"
	"github.com/maxviazov/football-sim/internal/logger"
	"github.com/maxviazov/football-sim/internal/service"
)

func main() {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("APP_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	cfg.ApplyEnv()

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	roster := service.NewRosterService(appLogger)
	competitions := service.NewCompetitionService(roster, cfg.Simulation.ServiceSettings(), appLogger)

	health := handler.NewHealthHandler()
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(appLogger))
	handler.Register(engine, health, competitions)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.App.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: c.Handler(engine),
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	health.Drain()
	appLogger.Info().Dur("timeout", cfg.App.ShutdownTimeout).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	appLogger.Info().Msg("server stopped")
	return nil
}

// requestLogger emits one structured line per request.
func requestLogger(l zerolog.Logger) gin.HandlerFunc {
	httpLog := l.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		c.Next()
		evt := httpLog.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = httpLog.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}
