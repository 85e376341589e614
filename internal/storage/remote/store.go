package remote

import (
	"context"
	"fmt"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/domain/application"
	"github.com/honeycarbs/job-finder/pkg/formstore"
)

// recordClient describes the subset of the formstore client used by the store.
type recordClient interface {
	Latest(ctx context.Context) (formstore.Record, bool, error)
	Create(ctx context.Context, fields formstore.Fields) (formstore.Record, error)
	Update(ctx context.Context, id string, fields formstore.Fields) error
}

// Store implements application.Store over the remote /formdata API
type Store struct {
	client recordClient
}

var _ application.Store = (*Store)(nil)

// NewStore builds a Store
func NewStore(client *formstore.Client) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("remote store: client is required")
	}
	return &Store{client: client}, nil
}

// FetchLatest returns the most recently updated remote record
func (s *Store) FetchLatest(ctx context.Context) (domain.StoredApplication, bool, error) {
	rec, ok, err := s.client.Latest(ctx)
	if err != nil {
		return domain.StoredApplication{}, false, &application.FetchError{Err: err}
	}
	if !ok {
		return domain.StoredApplication{}, false, nil
	}
	return toDomain(rec), true, nil
}

// Create posts a new record
func (s *Store) Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	rec, err := s.client.Create(ctx, toFields(record))
	if err != nil {
		return domain.StoredApplication{}, &application.PersistenceError{Op: "create", Err: err}
	}
	return toDomain(rec), nil
}

// Update puts record under id
func (s *Store) Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) error {
	if err := s.client.Update(ctx, string(id), toFields(record)); err != nil {
		return &application.PersistenceError{Op: "update", Err: err}
	}
	return nil
}

func toFields(r domain.ApplicationRecord) formstore.Fields {
	return formstore.Fields{
		Name:       r.Name,
		Age:        r.Age,
		Email:      r.Email,
		Experience: r.Experience,
		JobRole:    r.JobRole,
		Company:    r.Company,
	}
}

func toDomain(rec formstore.Record) domain.StoredApplication {
	return domain.StoredApplication{
		ID: domain.RecordID(rec.ID),
		Record: domain.ApplicationRecord{
			Name:       rec.Name,
			Age:        rec.Age,
			Email:      rec.Email,
			Experience: rec.Experience,
			JobRole:    rec.JobRole,
			Company:    rec.Company,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
