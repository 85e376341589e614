//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/job-finder/internal/config"
	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/internal/storage/remote"
	"github.com/honeycarbs/job-finder/pkg/formstore"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Lookup tables
		provideCatalog,

		// Infrastructure - record store
		provideFormStoreConfig,
		formstore.NewClient,
		remote.NewStore,
		wire.Bind(new(application.Store), new(*remote.Store)),

		// Services
		application.NewSessionWithDeps,

		// Export
		provideExporter,
		newResources,
	)

	return &Resources{}, nil
}
