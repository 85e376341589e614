package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository keeps applications in process memory
type ApplicationRepository struct {
	mu    sync.RWMutex
	apps  map[domain.RecordID]domain.StoredApplication
	seq   map[domain.RecordID]int
	next  int
	clock func() time.Time
}

// NewApplicationRepository creates an empty repository
func NewApplicationRepository() *ApplicationRepository {
	return NewApplicationRepositoryWithClock(time.Now)
}

// NewApplicationRepositoryWithClock creates an empty repository using clock for timestamps
func NewApplicationRepositoryWithClock(clock func() time.Time) *ApplicationRepository {
	return &ApplicationRepository{
		apps:  make(map[domain.RecordID]domain.StoredApplication),
		seq:   make(map[domain.RecordID]int),
		clock: clock,
	}
}

// List returns applications, most recently updated first; ties keep insertion order
func (r *ApplicationRepository) List(ctx context.Context) ([]domain.StoredApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StoredApplication, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, app)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})

	return out, nil
}

// Create stores record under a new UUID
func (r *ApplicationRepository) Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredApplication{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock().UTC()
	app := domain.StoredApplication{
		ID:        domain.RecordID(uuid.NewString()),
		Record:    record,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.apps[app.ID] = app
	r.seq[app.ID] = r.next
	r.next++

	return app, nil
}

// Update overwrites the application under id
func (r *ApplicationRepository) Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredApplication{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return domain.StoredApplication{}, repository.ErrNotFound
	}
	app.Record = record
	app.UpdatedAt = r.clock().UTC()
	r.apps[id] = app

	return app, nil
}
