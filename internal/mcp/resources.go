package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/job-finder/internal/config"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

// BuildResources wires the form session and its collaborators from config
func BuildResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	res, err := InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		return nil, fmt.Errorf("mcp: initialize resources: %w", err)
	}

	logger.Info("record store client initialized", "url", cfg.FormStore.URL, "timeout", cfg.FormStore.Timeout)
	if res.Exporter != nil {
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.Sheets.SpreadsheetID, "tab", cfg.Sheets.Tab)
	}

	return res, nil
}
