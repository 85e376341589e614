package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Tab         string `json:"tab,omitempty" jsonschema:"Tab name; defaults to the configured tab"`
	WriteHeader bool   `json:"write_header,omitempty" jsonschema:"Overwrite row 1 with column headers before appending"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	ApplicationID string    `json:"application_id" jsonschema:"Exported application"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

// ApplicationExporter writes a submitted application somewhere outside the store
type ApplicationExporter interface {
	Export(ctx context.Context, view application.View, params SheetsExportParams) (SheetsExportResult, error)
}

type sheetsExportTool struct {
	session  FormSession
	exporter ApplicationExporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(session FormSession, exporter ApplicationExporter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{session: session, exporter: exporter, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Append the submitted application as a row to the configured Google Sheet",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}
	if t.exporter == nil {
		return textResult("sheets_export unavailable: Google Sheets not configured"), nil,
			fmt.Errorf("google sheets not configured")
	}
	if params == nil {
		params = &SheetsExportParams{}
	}

	view := t.session.Snapshot()
	if view.Mode != domain.ModeSubmitted {
		return nil, nil, fmt.Errorf("only a submitted application can be exported")
	}

	result, err := t.exporter.Export(ctx, view, *params)
	if err != nil {
		t.logger.Error("sheets_export failed", "id", view.ID, "err", err)
		return nil, nil, fmt.Errorf("failed to export application: %w", err)
	}

	t.logger.Info("sheets_export completed",
		"id", view.ID,
		"spreadsheet_id", result.SpreadsheetID,
		"tab", result.Tab,
		"written_rows", result.WrittenRows,
	)

	return textResult(result.Message), result, nil
}
