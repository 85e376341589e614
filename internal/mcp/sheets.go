package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/internal/mcp/tools"
)

var sheetHeader = []interface{}{
	"ID", "Full Name", "Age", "Email", "Experience", "Job Role", "Preferred Company", "Exported At",
}

// sheetsWriter is the subset of the sheets client the exporter needs
type sheetsWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

type sheetsExporter struct {
	client        sheetsWriter
	spreadsheetID string
	tab           string
	now           func() time.Time
}

var _ tools.ApplicationExporter = (*sheetsExporter)(nil)

func newSheetsExporter(client sheetsWriter, spreadsheetID, tab string) *sheetsExporter {
	if tab == "" {
		tab = "Sheet1"
	}
	return &sheetsExporter{
		client:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (e *sheetsExporter) Export(ctx context.Context, view application.View, params tools.SheetsExportParams) (tools.SheetsExportResult, error) {
	tab := params.Tab
	if tab == "" {
		tab = e.tab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: e.spreadsheetID,
		Tab:           tab,
		ApplicationID: string(view.ID),
	}

	if params.WriteHeader {
		if err := e.client.UpdateValues(ctx, e.spreadsheetID, tabRange(tab), [][]interface{}{sheetHeader}); err != nil {
			return result, fmt.Errorf("sheets: failed to write header: %w", err)
		}
	}

	completedAt := e.now()
	if err := e.client.AppendValues(ctx, e.spreadsheetID, tabRange(tab), [][]interface{}{applicationRow(view, completedAt)}); err != nil {
		return result, fmt.Errorf("sheets: failed to append row: %w", err)
	}

	result.WrittenRows = 1
	result.CompletedAt = completedAt
	result.Message = fmt.Sprintf("exported application %s to %s", view.ID, tab)

	return result, nil
}

// tabRange anchors at A1; append finds the end of the table from there
func tabRange(tab string) string {
	return fmt.Sprintf("%s!A1", tab)
}

func applicationRow(view application.View, exportedAt time.Time) []interface{} {
	r := view.Record
	return []interface{}{
		string(view.ID),
		r.Name,
		r.Age,
		r.Email,
		r.Experience,
		r.JobRole,
		r.Company,
		exportedAt.Format(time.RFC3339),
	}
}
