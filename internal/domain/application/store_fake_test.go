package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/honeycarbs/job-finder/internal/domain"
)

// fakeStore is an in-process Store that records every call
type fakeStore struct {
	mu sync.Mutex

	records []domain.StoredApplication
	nextID  int

	fetchErr  error
	createErr error
	updateErr error

	// when set, the matching call signals entered and then waits for release
	fetchGate  chan struct{}
	createGate chan struct{}
	entered    chan struct{}

	fetches int
	creates int
	updates int
}

func (f *fakeStore) wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeStore) FetchLatest(ctx context.Context) (domain.StoredApplication, bool, error) {
	f.mu.Lock()
	f.fetches++
	gate := f.fetchGate
	f.mu.Unlock()

	if err := f.wait(ctx, gate); err != nil {
		return domain.StoredApplication{}, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return domain.StoredApplication{}, false, f.fetchErr
	}
	if len(f.records) == 0 {
		return domain.StoredApplication{}, false, nil
	}
	return f.records[0], true, nil
}

func (f *fakeStore) Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	f.mu.Lock()
	f.creates++
	gate := f.createGate
	f.mu.Unlock()

	if err := f.wait(ctx, gate); err != nil {
		return domain.StoredApplication{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.StoredApplication{}, f.createErr
	}

	f.nextID++
	stored := domain.StoredApplication{
		ID:     domain.RecordID(fmt.Sprintf("rec-%d", f.nextID)),
		Record: record,
	}
	f.records = append(f.records, stored)
	return stored, nil
}

func (f *fakeStore) Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Record = record
			return nil
		}
	}
	return fmt.Errorf("record %s not found", id)
}

func (f *fakeStore) get(id domain.RecordID) (domain.StoredApplication, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.StoredApplication{}, false
}

func (f *fakeStore) counts() (fetches, creates, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches, f.creates, f.updates
}
