package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/internal/mcp/tools"
)

type writeCall struct {
	op            string
	spreadsheetID string
	rng           string
	values        [][]interface{}
}

type fakeSheetsWriter struct {
	calls     []writeCall
	appendErr error
	updateErr error
}

func (f *fakeSheetsWriter) AppendValues(_ context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	f.calls = append(f.calls, writeCall{op: "append", spreadsheetID: spreadsheetID, rng: range_, values: values})
	return f.appendErr
}

func (f *fakeSheetsWriter) UpdateValues(_ context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	f.calls = append(f.calls, writeCall{op: "update", spreadsheetID: spreadsheetID, rng: range_, values: values})
	return f.updateErr
}

func submittedView() application.View {
	return application.View{
		ID:   "app-7",
		Mode: domain.ModeSubmitted,
		Record: domain.ApplicationRecord{
			Name:       "Amy",
			Age:        "30",
			Email:      "a@x.com",
			Experience: "5",
			JobRole:    "Developer",
			Company:    "Google",
		},
	}
}

func TestSheetsExporterAppendsRow(t *testing.T) {
	writer := &fakeSheetsWriter{}
	exporter := newSheetsExporter(writer, "sheet-1", "Applications")
	exportedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exporter.now = func() time.Time { return exportedAt }

	result, err := exporter.Export(context.Background(), submittedView(), tools.SheetsExportParams{})
	require.NoError(t, err)

	assert.Equal(t, "sheet-1", result.SpreadsheetID)
	assert.Equal(t, "Applications", result.Tab)
	assert.Equal(t, "app-7", result.ApplicationID)
	assert.Equal(t, 1, result.WrittenRows)
	assert.Equal(t, exportedAt, result.CompletedAt)

	require.Len(t, writer.calls, 1)
	call := writer.calls[0]
	assert.Equal(t, "append", call.op)
	assert.Equal(t, "Applications!A1", call.rng)
	assert.Equal(t, [][]interface{}{{
		"app-7", "Amy", "30", "a@x.com", "5", "Developer", "Google", "2026-03-01T12:00:00Z",
	}}, call.values)
}

func TestSheetsExporterHeaderAndTabOverride(t *testing.T) {
	writer := &fakeSheetsWriter{}
	exporter := newSheetsExporter(writer, "sheet-1", "")

	result, err := exporter.Export(context.Background(), submittedView(), tools.SheetsExportParams{
		Tab:         "Archive",
		WriteHeader: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Archive", result.Tab)

	require.Len(t, writer.calls, 2)
	assert.Equal(t, "update", writer.calls[0].op)
	assert.Equal(t, "Archive!A1", writer.calls[0].rng)
	assert.Equal(t, [][]interface{}{sheetHeader}, writer.calls[0].values)
	assert.Equal(t, "append", writer.calls[1].op)
}

func TestSheetsExporterDefaultTab(t *testing.T) {
	exporter := newSheetsExporter(&fakeSheetsWriter{}, "sheet-1", "")
	assert.Equal(t, "Sheet1", exporter.tab)
}

func TestSheetsExporterErrors(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		writer := &fakeSheetsWriter{updateErr: errors.New("forbidden")}
		exporter := newSheetsExporter(writer, "sheet-1", "Applications")

		_, err := exporter.Export(context.Background(), submittedView(), tools.SheetsExportParams{WriteHeader: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header")
		assert.Len(t, writer.calls, 1)
	})

	t.Run("append", func(t *testing.T) {
		writer := &fakeSheetsWriter{appendErr: errors.New("quota")}
		exporter := newSheetsExporter(writer, "sheet-1", "Applications")

		result, err := exporter.Export(context.Background(), submittedView(), tools.SheetsExportParams{})
		require.Error(t, err)
		assert.Zero(t, result.WrittenRows)
	})
}
