package repository

import (
	"context"
	"errors"

	"github.com/honeycarbs/job-finder/internal/domain"
)

// ErrNotFound is returned when no application exists under the given ID
var ErrNotFound = errors.New("repository: application not found")

// ApplicationRepository defines storage operations behind the /formdata API
type ApplicationRepository interface {
	// List returns every application, most recently updated first
	List(ctx context.Context) ([]domain.StoredApplication, error)

	// Create stores record under a freshly issued ID
	Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error)

	// Update overwrites the application stored under id
	Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) (domain.StoredApplication, error)
}
