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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ravison1985/advamolsanap/internal/auth"
	"github.com/ravison1985/advamolsanap/internal/config"
	"github.com/ravison1985/advamolsanap/internal/middleware"
	"github.com/ravison1985/advamolsanap/internal/report"
	"github.com/ravison1985/advamolsanap/internal/service"
	"github.com/ravison1985/advamolsanap/internal/storage/sqlite"
	"github.com/ravison1985/advamolsanap/internal/web"
	"github.com/ravison1985/advamolsanap/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(verifier, auth.NewSessionManager(cfg.SessionSecret), logger)

	server, err := web.NewServer(
		service.NewRecordService(store, cfg.AlertHorizonDays),
		authService,
		report.NewGenerator(store, cfg.CurrencySymbol),
		middleware.NewMetrics(),
		cfg.CurrencySymbol,
		logger,
	)
	if err != nil {
		return err
	}

	// Wrap with h2c so HTTP/2 clients work without TLS
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(server, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", cfg.Addr(), "url", "http://localhost"+cfg.Addr())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newVerifier(cfg *config.Config) (auth.Verifier, error) {
	if cfg.PasswordHash != "" {
		return auth.NewStaticVerifierFromHash(cfg.Username, cfg.PasswordHash)
	}
	return auth.NewStaticVerifier(cfg.Username, cfg.Password)
}
