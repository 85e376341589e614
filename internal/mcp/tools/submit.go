package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// SubmitParams defines the arguments for the submit_application tool
type SubmitParams struct{}

type submitTool struct {
	session FormSession
	logger  *logging.Logger
}

// WithSubmitApplication registers the submit_application tool
func WithSubmitApplication(session FormSession) Option {
	return func(reg *registry) {
		handler := submitTool{session: session, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "submit_application",
			Description: "Save the application to the record store and show the confirmation. Requires jobRole.",
		}, handler.handle)
	}
}

func (t submitTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *SubmitParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}

	t.logger.Info("submit_application called")

	if err := t.session.Submit(ctx); err != nil {
		t.logger.Warn("submit_application failed", "err", err)
		return nil, nil, err
	}

	state := formStateFromView(t.session.Snapshot())
	t.logger.Info("submit_application completed", "id", state.ID)

	return textResult(renderForm(state)), state, nil
}
