package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/internal/mcp/tools"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources are the dependencies the tools run against.
// Exporter is nil when Google Sheets is not configured.
type Resources struct {
	Session  *application.Session
	Exporter tools.ApplicationExporter
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) {
	tools.Register(server, r.logger,
		tools.WithFormState(res.Session),
		tools.WithSetField(res.Session),
		tools.WithSubmitApplication(res.Session),
		tools.WithResetApplication(res.Session),
		tools.WithCompanyKeypoints(res.Session),
		tools.WithSheetsExport(res.Session, res.Exporter),
	)
}
