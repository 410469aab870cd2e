package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-prepay/internal/logging"
	"github.com/iwvelando/loan-prepay/internal/server"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	maxRequestSize := flag.String("max-request-size", "", "request body limit override, e.g. 64K or 1M")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *address != "" {
		cfg.Address = *address
	}
	if *maxRequestSize != "" {
		size, err := server.ParseSize(*maxRequestSize)
		if err != nil {
			logger.Fatal("invalid request size override",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		cfg.SetRequestSizeBytes(size)
	}

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg, version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.Int64("max_request_size", cfg.RequestSizeBytes()),
			zap.Int("max_term_months", cfg.Loan.MaxTermMonths),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received", zap.String("op", "main"))
	case err := <-errCh:
		logger.Error("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
