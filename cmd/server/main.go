package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirchsolutions/sirchweb/internal/config"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/server"
	"github.com/sirchsolutions/sirchweb/internal/telemetry"
	"github.com/sirchsolutions/sirchweb/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := &logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      7,
		LogRequests: cfg.LogRequests,
	}

	// Configure and get logger
	logging.Configure(logConfig)
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting sirchweb API %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, logger, nil)
	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped: %v", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server cleanly: %v", err)
		exitCode = 1
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces: %v", err)
	}

	if exitCode != 0 {
		logger.Close()
		os.Exit(exitCode)
	}
}
