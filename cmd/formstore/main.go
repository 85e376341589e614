package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/job-finder/internal/config"
	"github.com/honeycarbs/job-finder/internal/repository"
	"github.com/honeycarbs/job-finder/internal/storage/memory"
	neo4jstorage "github.com/honeycarbs/job-finder/internal/storage/neo4j"
	"github.com/honeycarbs/job-finder/internal/storage/postgres"
	"github.com/honeycarbs/job-finder/internal/storeapi"
	"github.com/honeycarbs/job-finder/pkg/logging"
	n4j "github.com/honeycarbs/job-finder/pkg/neo4j"
	"github.com/honeycarbs/job-finder/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, closers, err := openRepository(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open record store backend", "backend", cfg.Store.Backend, "err", err)
		os.Exit(1)
	}

	handler := storeapi.NewHandler(repo, logger)
	router := storeapi.NewRouter(handler, storeapi.RouterConfig{AllowedOrigins: cfg.Store.AllowedOrigins}, logger)
	srv := storeapi.NewServer(logger, cfg.Store.Host, cfg.Store.Port, router)

	// The listener stops first, then the backend.
	stoppables := append([]shutdown.Stoppable{srv}, closers...)
	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		stoppables...,
	)

	if err := srv.Run(); err != nil {
		logger.Error("record store exited with error", "err", err)
	} else {
		logger.Info("record store stopped")
	}
}

func openRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.ApplicationRepository, []shutdown.Stoppable, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory record store; data is lost on restart")
		return memory.NewApplicationRepository(), nil, nil

	case config.BackendNeo4j:
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
		})
		if err != nil {
			return nil, nil, err
		}

		repo := neo4jstorage.NewApplicationRepository(client)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = client.Close(ctx)
			return nil, nil, err
		}
		logger.Info("Neo4j record store initialized", "uri", cfg.Neo4j.URI)
		return repo, []shutdown.Stoppable{client}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Postgres record store initialized")
		return postgres.NewApplicationRepository(db), []shutdown.Stoppable{postgres.Closer(db)}, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Store.Backend)
	}
}
