package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/job-finder/internal/config"
	"github.com/honeycarbs/job-finder/internal/mcp"
	"github.com/honeycarbs/job-finder/pkg/logging"
	"github.com/honeycarbs/job-finder/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := mcp.BuildResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build resources", "err", err)
		os.Exit(1)
	}

	srv, err := mcp.NewServer(logger, cfg, res)
	if err != nil {
		logger.Error("failed to create MCP server", "err", err)
		os.Exit(1)
	}

	// The form is usable right away; a late fetch loses to local edits.
	go func() {
		outcome := res.Session.Initialize(ctx)
		logger.Info("form session initialized", "outcome", outcome)
	}()

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
