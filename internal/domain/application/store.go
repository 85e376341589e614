package application

import (
	"context"

	"github.com/honeycarbs/job-finder/internal/domain"
)

// Store is the record store the session syncs with
type Store interface {
	// FetchLatest returns the session's record, false when the store holds none
	FetchLatest(ctx context.Context) (domain.StoredApplication, bool, error)

	// Create stores a new record and returns it with its assigned ID
	Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error)

	// Update overwrites the record stored under id
	Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) error
}
