package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// ResetParams defines the arguments for the reset_application tool
type ResetParams struct{}

type resetTool struct {
	session FormSession
	logger  *logging.Logger
}

// WithResetApplication registers the reset_application tool
func WithResetApplication(session FormSession) Option {
	return func(reg *registry) {
		handler := resetTool{session: session, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "reset_application",
			Description: "Confirm the submitted application and start a new, empty one",
		}, handler.handle)
	}
}

func (t resetTool) handle(_ context.Context, _ *sdkmcp.CallToolRequest, _ *ResetParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}

	if err := t.session.Reset(); err != nil {
		t.logger.Warn("reset_application rejected", "err", err)
		return nil, nil, err
	}

	state := formStateFromView(t.session.Snapshot())
	t.logger.Info("reset_application completed")

	return textResult(renderForm(state)), state, nil
}
