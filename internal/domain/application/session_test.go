package application

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/honeycarbs/job-finder/internal/catalog"
	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

func newTestSession(t *testing.T, store *fakeStore) *Session {
	t.Helper()

	s, err := NewSession(
		WithStore(store),
		WithCatalog(catalog.Default()),
		WithLogger(logging.FromZap(zaptest.NewLogger(t))),
	)
	require.NoError(t, err)
	return s
}

func setFields(t *testing.T, s *Session, kv ...string) {
	t.Helper()
	require.Zero(t, len(kv)%2)
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, s.SetField(kv[i], kv[i+1]), "set %s", kv[i])
	}
}

func TestNewSessionRequiresDeps(t *testing.T) {
	_, err := NewSession(WithCatalog(catalog.Default()))
	assert.ErrorContains(t, err, "store is required")

	_, err = NewSession(WithStore(&fakeStore{}))
	assert.ErrorContains(t, err, "catalog is required")

	s, err := NewSessionWithDeps(&fakeStore{}, catalog.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeEditing, s.Snapshot().Mode)
}

func TestSetFieldClearsCompanyOnRoleChange(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	setFields(t, s, "jobRole", "Developer", "company", "Google")
	require.Equal(t, "Google", s.Snapshot().Record.Company)

	// same role keeps the company
	require.NoError(t, s.SetField("jobRole", "Developer"))
	assert.Equal(t, "Google", s.Snapshot().Record.Company)

	require.NoError(t, s.SetField("jobRole", "Designer"))
	view := s.Snapshot()
	assert.Equal(t, "Designer", view.Record.JobRole)
	assert.Empty(t, view.Record.Company)
	assert.Equal(t, []string{"Adobe", "Figma", "Canva"}, view.Companies)

	require.NoError(t, s.SetField("jobRole", ""))
	assert.Empty(t, s.Snapshot().Record.Company)
	assert.Nil(t, s.Snapshot().Companies)
}

func TestCompanyInvariantHoldsForRandomEdits(t *testing.T) {
	s := newTestSession(t, &fakeStore{})
	cat := catalog.Default()
	rng := rand.New(rand.NewSource(42))

	roles := append(cat.Roles(), "")
	for i := 0; i < 500; i++ {
		before := s.Snapshot().Record

		if rng.Intn(2) == 0 {
			role := roles[rng.Intn(len(roles))]
			require.NoError(t, s.SetField("jobRole", role))

			after := s.Snapshot().Record
			if role != before.JobRole {
				assert.Empty(t, after.Company, "step %d", i)
			}
		} else {
			companies := cat.Companies(before.JobRole)
			if len(companies) == 0 {
				assert.Error(t, s.SetField("company", "Google"))
				continue
			}
			require.NoError(t, s.SetField("company", companies[rng.Intn(len(companies))]))
		}

		after := s.Snapshot().Record
		if after.Company != "" {
			assert.True(t, cat.Offers(after.JobRole, after.Company), "step %d: %+v", i, after)
		}
	}
}

func TestSetFieldRejectsInvalidValues(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "unknown field", field: "salary", value: "100"},
		{name: "unknown role", field: "jobRole", value: "Astronaut"},
		{name: "company without role", field: "company", value: "Google"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetField(tt.field, tt.value)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	setFields(t, s, "jobRole", "Marketer")
	err := s.SetField("company", "Figma")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldCompany, verr.Field)
	assert.Empty(t, s.Snapshot().Record.Company)
}

func TestSubmitWithoutJobRoleNeverCallsStore(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)
	setFields(t, s, "name", "Amy", "age", "30")

	err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrJobRoleRequired)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "jobRole required", verr.Error())

	_, creates, updates := store.counts()
	assert.Zero(t, creates)
	assert.Zero(t, updates)
	assert.Equal(t, domain.ModeEditing, s.Snapshot().Mode)
}

func TestSubmitCreatesThenUpdates(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)
	ctx := context.Background()

	setFields(t, s, "jobRole", "Developer", "company", "Microsoft")
	require.NoError(t, s.Submit(ctx))

	view := s.Snapshot()
	require.False(t, view.ID.IsZero())
	assert.Equal(t, domain.ModeSubmitted, view.Mode)

	firstID := view.ID
	require.NoError(t, s.Submit(ctx))

	_, creates, updates := store.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, updates)
	assert.Equal(t, firstID, s.Snapshot().ID)
}

func TestResetStartsNewRecord(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)
	ctx := context.Background()

	setFields(t, s, "name", "Bo", "jobRole", "Designer", "company", "Adobe")
	require.NoError(t, s.Submit(ctx))
	require.NoError(t, s.Reset())

	view := s.Snapshot()
	assert.True(t, view.ID.IsZero())
	assert.True(t, view.Record.IsZero())
	assert.Equal(t, domain.ModeEditing, view.Mode)

	setFields(t, s, "jobRole", "Designer")
	require.NoError(t, s.Submit(ctx))

	_, creates, updates := store.counts()
	assert.Equal(t, 2, creates)
	assert.Zero(t, updates)
}

func TestResetRequiresSubmitted(t *testing.T) {
	s := newTestSession(t, &fakeStore{})
	setFields(t, s, "name", "Amy")

	require.ErrorIs(t, s.Reset(), ErrNotSubmitted)
	assert.Equal(t, "Amy", s.Snapshot().Record.Name)
}

func TestSubmitRoundTrip(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	input := domain.ApplicationRecord{
		Name:       "Amy",
		Age:        "30",
		Email:      "a@x.com",
		Experience: "5",
		JobRole:    "Designer",
		Company:    "Figma",
	}
	setFields(t, s,
		"name", input.Name,
		"age", input.Age,
		"email", input.Email,
		"experience", input.Experience,
		"jobRole", input.JobRole,
		"company", input.Company,
	)
	require.NoError(t, s.Submit(context.Background()))

	view := s.Snapshot()
	stored, ok := store.get(view.ID)
	require.True(t, ok)
	if diff := cmp.Diff(input, stored.Record); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}

	text, ok := s.KeypointsFor("Figma")
	require.True(t, ok)
	assert.Equal(t, "Collaboration skills, prototyping knowledge, and innovation.", text)
	assert.Equal(t, text, view.Keypoints)

	_, ok = s.KeypointsFor("Initech")
	assert.False(t, ok)
}

func TestCreateEditUpdateScenario(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)
	ctx := context.Background()

	require.Equal(t, InitFresh, s.Initialize(ctx))
	view := s.Snapshot()
	require.True(t, view.Record.IsZero())
	require.True(t, view.ID.IsZero())

	setFields(t, s, "jobRole", "Developer", "company", "Google")
	require.NoError(t, s.Submit(ctx))
	id1 := s.Snapshot().ID
	require.False(t, id1.IsZero())
	require.Equal(t, domain.ModeSubmitted, s.Snapshot().Mode)

	require.NoError(t, s.Reset())
	require.NoError(t, s.SetField("jobRole", "Marketer"))
	assert.Empty(t, s.Snapshot().Record.Company)

	require.NoError(t, s.SetField("company", "HubSpot"))
	require.NoError(t, s.Submit(ctx))

	id2 := s.Snapshot().ID
	assert.NotEqual(t, id1, id2)

	_, creates, updates := store.counts()
	assert.Equal(t, 2, creates)
	assert.Zero(t, updates)
}

func TestSubmitCreateFailureKeepsState(t *testing.T) {
	store := &fakeStore{createErr: errors.New("503 service unavailable")}
	s := newTestSession(t, store)

	setFields(t, s,
		"name", "Amy",
		"age", "30",
		"email", "a@x.com",
		"experience", "5",
		"jobRole", "Developer",
		"company", "Facebook",
	)
	before := s.Snapshot()

	err := s.Submit(context.Background())
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create", perr.Op)
	assert.ErrorContains(t, err, "503")

	after := s.Snapshot()
	assert.Equal(t, domain.ModeEditing, after.Mode)
	assert.True(t, after.ID.IsZero())
	assert.Equal(t, before.Record, after.Record)

	// retry is a plain second submit
	store.mu.Lock()
	store.createErr = nil
	store.mu.Unlock()

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, domain.ModeSubmitted, s.Snapshot().Mode)
}

func TestSubmitUpdateFailureKeepsMode(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)
	ctx := context.Background()

	setFields(t, s, "jobRole", "Developer")
	require.NoError(t, s.Submit(ctx))
	id := s.Snapshot().ID

	store.mu.Lock()
	store.updateErr = errors.New("connection reset")
	store.mu.Unlock()

	err := s.Submit(ctx)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "update", perr.Op)

	view := s.Snapshot()
	assert.Equal(t, domain.ModeSubmitted, view.Mode)
	assert.Equal(t, id, view.ID)
}

func TestSubmitRejectsReentrantCalls(t *testing.T) {
	store := &fakeStore{
		createGate: make(chan struct{}),
		entered:    make(chan struct{}, 1),
	}
	s := newTestSession(t, store)
	setFields(t, s, "jobRole", "Developer")

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background())
	}()

	select {
	case <-store.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("create was never called")
	}

	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmitInProgress)
	assert.ErrorIs(t, s.SetField("name", "late"), ErrSubmitInProgress)
	assert.True(t, s.Snapshot().Submitting)

	close(store.createGate)
	require.NoError(t, <-done)

	_, creates, _ := store.counts()
	assert.Equal(t, 1, creates)
	assert.False(t, s.Snapshot().Submitting)
	assert.Empty(t, s.Snapshot().Record.Name)
}

func TestInitializeAdoptsStoredRecord(t *testing.T) {
	stored := domain.StoredApplication{
		ID: "existing",
		Record: domain.ApplicationRecord{
			Name:    "Cy",
			JobRole: "Marketer",
			Company: "LinkedIn",
		},
	}
	store := &fakeStore{records: []domain.StoredApplication{stored}}
	s := newTestSession(t, store)
	ctx := context.Background()

	require.Equal(t, InitAdopted, s.Initialize(ctx))

	view := s.Snapshot()
	assert.Equal(t, stored.Record, view.Record)
	assert.Equal(t, domain.RecordID("existing"), view.ID)
	assert.Equal(t, domain.ModeEditing, view.Mode)

	require.NoError(t, s.Submit(ctx))
	_, creates, updates := store.counts()
	assert.Zero(t, creates)
	assert.Equal(t, 1, updates)
}

func TestInitializeIsOneShot(t *testing.T) {
	store := &fakeStore{}
	s := newTestSession(t, store)

	require.Equal(t, InitFresh, s.Initialize(context.Background()))
	require.Equal(t, InitSkipped, s.Initialize(context.Background()))

	fetches, _, _ := store.counts()
	assert.Equal(t, 1, fetches)
}

func TestInitializeFetchFailureStartsFresh(t *testing.T) {
	store := &fakeStore{fetchErr: &FetchError{Err: errors.New("dial tcp: refused")}}
	s := newTestSession(t, store)

	assert.Equal(t, InitFresh, s.Initialize(context.Background()))
	view := s.Snapshot()
	assert.True(t, view.Record.IsZero())
	assert.True(t, view.ID.IsZero())
}

func TestInitializeClearsStaleCatalogValues(t *testing.T) {
	store := &fakeStore{records: []domain.StoredApplication{
		{ID: "old", Record: domain.ApplicationRecord{Name: "Di", JobRole: "Developer", Company: "Figma"}},
	}}
	s := newTestSession(t, store)

	require.Equal(t, InitAdopted, s.Initialize(context.Background()))
	record := s.Snapshot().Record
	assert.Equal(t, "Developer", record.JobRole)
	assert.Empty(t, record.Company)

	store = &fakeStore{records: []domain.StoredApplication{
		{ID: "older", Record: domain.ApplicationRecord{JobRole: "Astronaut", Company: "NASA"}},
	}}
	s = newTestSession(t, store)
	require.Equal(t, InitAdopted, s.Initialize(context.Background()))
	record = s.Snapshot().Record
	assert.Empty(t, record.JobRole)
	assert.Empty(t, record.Company)
}

func TestInitializeKeepsEditsMadeDuringFetch(t *testing.T) {
	store := &fakeStore{
		records: []domain.StoredApplication{
			{ID: "remote", Record: domain.ApplicationRecord{Name: "Remote Name", JobRole: "Designer"}},
		},
		fetchGate: make(chan struct{}),
		entered:   make(chan struct{}, 1),
	}
	s := newTestSession(t, store)

	done := make(chan InitOutcome, 1)
	go func() {
		done <- s.Initialize(context.Background())
	}()

	select {
	case <-store.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was never called")
	}

	require.NoError(t, s.SetField("name", "Typed Early"))
	close(store.fetchGate)

	assert.Equal(t, InitDiscarded, <-done)

	view := s.Snapshot()
	assert.Equal(t, "Typed Early", view.Record.Name)
	assert.Empty(t, view.Record.JobRole)
	assert.True(t, view.ID.IsZero())
}

func TestSnapshotExposesRenderingContract(t *testing.T) {
	s := newTestSession(t, &fakeStore{})

	view := s.Snapshot()
	assert.Equal(t, []string{"Developer", "Designer", "Marketer"}, view.Roles)
	assert.Nil(t, view.Companies)
	assert.Empty(t, view.Keypoints)

	setFields(t, s, "jobRole", "Developer", "company", "Google")
	view = s.Snapshot()
	assert.Equal(t, []string{"Google", "Microsoft", "Facebook"}, view.Companies)
	assert.Equal(t, "Strong coding skills, teamwork, and innovation.", view.Keypoints)
}
