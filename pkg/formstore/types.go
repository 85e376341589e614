package formstore

import (
	"fmt"
	"net/http"
	"time"
)

// Config defines record store client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client talks to the /formdata record store
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Fields is the application body sent on create and update
type Fields struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Email      string `json:"email"`
	Experience string `json:"experience"`
	JobRole    string `json:"jobRole"`
	Company    string `json:"company"`
}

// Record is a stored application as returned by the store
type Record struct {
	ID string `json:"_id"`
	Fields
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("formstore: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("formstore: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
