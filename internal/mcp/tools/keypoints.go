package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

// KeypointsParams defines the arguments for the company_keypoints tool
type KeypointsParams struct {
	Company string `json:"company" jsonschema:"Company name as listed for a job role"`
}

// KeypointsResult carries the descriptive text of one company
type KeypointsResult struct {
	Company   string `json:"company"`
	Keypoints string `json:"keypoints"`
}

type keypointsTool struct {
	session FormSession
	logger  *logging.Logger
}

// WithCompanyKeypoints registers the company_keypoints tool
func WithCompanyKeypoints(session FormSession) Option {
	return func(reg *registry) {
		handler := keypointsTool{session: session, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "company_keypoints",
			Description: "Look up what a company looks for in applicants",
		}, handler.handle)
	}
}

func (t keypointsTool) handle(_ context.Context, _ *sdkmcp.CallToolRequest, params *KeypointsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.session == nil {
		return nil, nil, fmt.Errorf("form session not configured")
	}
	if params == nil || params.Company == "" {
		return nil, nil, fmt.Errorf("company is required")
	}

	text, ok := t.session.KeypointsFor(params.Company)
	if !ok {
		t.logger.Debug("company_keypoints: unknown company", "company", params.Company)
		return nil, nil, fmt.Errorf("no key points for company %q", params.Company)
	}

	result := KeypointsResult{Company: params.Company, Keypoints: text}
	return textResult(fmt.Sprintf("%s: %s", params.Company, text)), result, nil
}
