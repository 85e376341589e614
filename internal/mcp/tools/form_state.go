package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// FormStateParams defines the arguments for the form_state tool
type FormStateParams struct{}

type formStateTool struct {
	session FormSession
	logger  *logging.Logger
}

// WithFormState registers the form_state tool
func WithFormState(session FormSession) Option {
	return func(reg *registry) {
		handler := formStateTool{session: session, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "form_state",
			Description: "Show the job application form, or the confirmation once it was submitted",
		}, handler.handle)
	}
}

func (t formStateTool) handle(_ context.Context, _ *sdkmcp.CallToolRequest, _ *FormStateParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}

	state := formStateFromView(t.session.Snapshot())
	t.logger.Debug("form_state called", "mode", state.Mode, "id", state.ID)

	return textResult(renderForm(state)), state, nil
}
