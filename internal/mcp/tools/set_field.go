package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// SetFieldParams defines the arguments for the set_field tool
type SetFieldParams struct {
	Field string `json:"field" jsonschema:"One of name, age, email, experience, jobRole, company"`
	Value string `json:"value" jsonschema:"New value; empty clears the field"`
}

type setFieldTool struct {
	session FormSession
	logger  *logging.Logger
}

// WithSetField registers the set_field tool
func WithSetField(session FormSession) Option {
	return func(reg *registry) {
		handler := setFieldTool{session: session, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "set_field",
			Description: "Set one field of the job application form. Changing jobRole clears company.",
		}, handler.handle)
	}
}

func (t setFieldTool) handle(_ context.Context, _ *sdkmcp.CallToolRequest, params *SetFieldParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}
	if params == nil || params.Field == "" {
		return nil, nil, fmt.Errorf("field is required")
	}

	if err := t.session.SetField(params.Field, params.Value); err != nil {
		t.logger.Warn("set_field rejected", "field", params.Field, "err", err)
		return nil, nil, err
	}

	state := formStateFromView(t.session.Snapshot())
	t.logger.Debug("set_field applied", "field", params.Field)

	return textResult(renderForm(state)), state, nil
}
