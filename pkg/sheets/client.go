package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	Endpoint        string // overrides the API endpoint, used against fakes
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// AppendValues appends rows below the last filled row of range_
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", range_, err)
	}
	return nil
}

// UpdateValues overwrites range_ with values
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", range_, err)
	}
	return nil
}
