package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/app"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/config"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/observability"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var transport = flag.String("transport", "http", "MCP transport: http or stdio")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// stdout carries the protocol in stdio mode.
	logger := logging.New(os.Stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	container, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = container.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *transport {
	case "stdio":
		logger.Info("mcp server starting", "transport", "stdio")
		if err := app.NewMCPServer(container).Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("mcp server failed", "error", err)
		}
	case "http":
		serveHTTP(ctx, container, logger)
	default:
		logger.Error("unknown transport", "transport", *transport)
	}
}

func serveHTTP(ctx context.Context, container *app.Container, logger *logging.Logger) {
	srv, err := app.NewMCPHTTPServer(container)
	if err != nil {
		logger.Error("build mcp server", "error", err)
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mcp server starting", "transport", "http", "addr", srv.Addr, "path", container.Config.MCPPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("mcp server failed", "error", err)
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}
	logger.Info("mcp server stopped")
}
