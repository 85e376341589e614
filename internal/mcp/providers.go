package mcp

import (
	"context"

	"github.com/honeycarbs/job-finder/internal/catalog"
	"github.com/honeycarbs/job-finder/internal/config"
	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/internal/mcp/tools"
	"github.com/honeycarbs/job-finder/pkg/formstore"
	"github.com/honeycarbs/job-finder/pkg/logging"
	sheetsclient "github.com/honeycarbs/job-finder/pkg/sheets"
)

// provideCatalog loads the catalog file, or the built-in one when no path is set
func provideCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

// provideFormStoreConfig extracts record store client config from main config
func provideFormStoreConfig(cfg config.Config) formstore.Config {
	return formstore.Config{
		BaseURL: cfg.FormStore.URL,
		Timeout: cfg.FormStore.Timeout,
	}
}

// provideExporter builds the Sheets exporter; nil when Sheets is not configured
func provideExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (tools.ApplicationExporter, error) {
	if !cfg.SheetsEnabled() {
		logger.Info("Google Sheets export disabled")
		return nil, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{
		CredentialsPath: cfg.Sheets.CredentialsPath,
	})
	if err != nil {
		return nil, err
	}

	return newSheetsExporter(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab), nil
}

// newResources creates Resources struct
func newResources(session *application.Session, exporter tools.ApplicationExporter) *Resources {
	return &Resources{
		Session:  session,
		Exporter: exporter,
	}
}
