package formstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8081/api"
	defaultTimeout = 10 * time.Second
	resourcePath   = "formdata"
	maxErrorBody   = 4096
)

// NewClient instantiates a record store client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("formstore: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("formstore: base url must be http(s), got %q", baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// List returns every stored record in store order
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Latest returns the most recently updated record. Records without an
// updatedAt rank lowest; ties keep store order.
func (c *Client) Latest(ctx context.Context) (Record, bool, error) {
	records, err := c.List(ctx)
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := pickLatest(records)
	return rec, ok, nil
}

func pickLatest(records []Record) (Record, bool) {
	best := -1
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		if best < 0 || r.UpdatedAt.After(records[best].UpdatedAt) {
			best = i
		}
	}
	if best < 0 {
		return Record{}, false
	}
	return records[best], true
}

// Create stores fields as a new record
func (c *Client) Create(ctx context.Context, fields Fields) (Record, error) {
	var created Record
	if err := c.do(ctx, http.MethodPost, nil, fields, &created); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return Record{}, fmt.Errorf("formstore: create response has no _id")
	}
	return created, nil
}

// Update overwrites the record stored under id
func (c *Client) Update(ctx context.Context, id string, fields Fields) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("formstore: id is required")
	}
	return c.do(ctx, http.MethodPut, []string{id}, fields, nil)
}

func (c *Client) do(ctx context.Context, method string, segments []string, body, out any) error {
	if c == nil {
		return fmt.Errorf("formstore: client is nil")
	}

	endpoint, err := url.JoinPath(c.baseURL, append([]string{resourcePath}, segments...)...)
	if err != nil {
		return fmt.Errorf("formstore: build url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("formstore: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("formstore: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("formstore: %s %s: %w", method, req.URL.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("formstore: decode response: %w", err)
	}
	return nil
}
