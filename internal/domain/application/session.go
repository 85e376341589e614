package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/honeycarbs/job-finder/internal/catalog"
	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/pkg/logging"
)

// InitOutcome describes what Initialize did with the fetched record
type InitOutcome string

const (
	// InitAdopted means the stored record and its ID became the session state
	InitAdopted InitOutcome = "adopted"
	// InitFresh means the store had nothing usable and the session starts empty
	InitFresh InitOutcome = "fresh"
	// InitDiscarded means the user edited the form before the fetch resolved; the fetch lost
	InitDiscarded InitOutcome = "discarded"
	// InitSkipped means Initialize already ran for this session
	InitSkipped InitOutcome = "skipped"
)

// Option configures Session
type Option func(*config)

type config struct {
	store   Store
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// WithStore sets the record store
func WithStore(store Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithCatalog sets the role/company lookup tables
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *config) {
		c.catalog = cat
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Session owns the form state of one application: field values, the store ID
// once one is assigned, and the editing/submitted mode.
//
// The mutex guards state only; it is never held across a store call.
type Session struct {
	store   Store
	catalog *catalog.Catalog
	logger  *logging.Logger

	mu          sync.Mutex
	record      domain.ApplicationRecord
	id          domain.RecordID
	mode        domain.Mode
	edits       uint64
	initialized bool
	submitting  bool
}

// NewSession builds Session from options
func NewSession(opts ...Option) (*Session, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewSessionWithDeps(cfg.store, cfg.catalog, cfg.logger)
}

// NewSessionWithDeps creates a Session with direct dependencies (Wire-compatible)
func NewSessionWithDeps(store Store, cat *catalog.Catalog, logger *logging.Logger) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("application.Session: store is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("application.Session: catalog is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Session{
		store:   store,
		catalog: cat,
		logger:  logger.With("component", "application_session"),
		mode:    domain.ModeEditing,
	}, nil
}

// Initialize loads the latest stored record into the session. It runs once;
// later calls return InitSkipped. If any field was edited while the fetch was
// in flight the fetched record is dropped and the user's edits are kept.
func (s *Session) Initialize(ctx context.Context) InitOutcome {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return InitSkipped
	}
	s.initialized = true
	editsBefore := s.edits
	s.mu.Unlock()

	stored, ok, err := s.store.FetchLatest(ctx)
	if err != nil {
		s.logger.Warn("fetch latest application failed, starting empty", "err", err)
		return InitFresh
	}
	if !ok || stored.ID.IsZero() {
		s.logger.Debug("no stored application, starting empty")
		return InitFresh
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edits != editsBefore || s.submitting || !s.id.IsZero() {
		s.logger.Info("form edited before fetch resolved, keeping local edits",
			"fetched_id", stored.ID,
		)
		return InitDiscarded
	}

	s.record = s.conform(stored.Record)
	s.id = stored.ID
	s.logger.Info("adopted stored application", "id", stored.ID)

	return InitAdopted
}

// conform drops role and company values the catalog no longer offers
func (s *Session) conform(r domain.ApplicationRecord) domain.ApplicationRecord {
	if r.JobRole != "" && !s.catalog.HasRole(r.JobRole) {
		s.logger.Warn("stored jobRole not in catalog, clearing", "job_role", r.JobRole)
		r.JobRole = ""
	}
	if r.Company != "" && !s.catalog.Offers(r.JobRole, r.Company) {
		s.logger.Warn("stored company not offered for jobRole, clearing",
			"job_role", r.JobRole,
			"company", r.Company,
		)
		r.Company = ""
	}
	return r
}

// SetField sets one form field. Changing jobRole clears company.
func (s *Session) SetField(name, value string) error {
	field, ok := domain.ParseField(name)
	if !ok {
		return &ValidationError{Field: domain.Field(name), Message: fmt.Sprintf("unknown field %q", name)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInProgress
	}

	switch field {
	case domain.FieldJobRole:
		if value != "" && !s.catalog.HasRole(value) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("unknown jobRole %q", value)}
		}
		if value != s.record.JobRole {
			s.record.Company = ""
		}
	case domain.FieldCompany:
		if value != "" && !s.catalog.Offers(s.record.JobRole, value) {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("company %q is not offered for jobRole %q", value, s.record.JobRole),
			}
		}
	}

	s.record = s.record.With(field, value)
	s.edits++

	return nil
}

// Submit persists the form: create when the session holds no ID, update
// otherwise. On failure the mode and every field stay as they were.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInProgress
	}
	if s.record.JobRole == "" {
		s.mu.Unlock()
		return ErrJobRoleRequired
	}
	s.submitting = true
	record, id := s.record, s.id
	s.mu.Unlock()

	if id.IsZero() {
		stored, err := s.store.Create(ctx, record)
		if err == nil && stored.ID.IsZero() {
			err = fmt.Errorf("store returned no id")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.submitting = false

		if err != nil {
			s.logger.Error("create application failed", "err", err)
			return asPersistenceError("create", err)
		}

		s.id = stored.ID
		s.mode = domain.ModeSubmitted
		s.logger.Info("application created", "id", stored.ID, "job_role", record.JobRole)
		return nil
	}

	err := s.store.Update(ctx, id, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.logger.Error("update application failed", "id", id, "err", err)
		return asPersistenceError("update", err)
	}

	s.mode = domain.ModeSubmitted
	s.logger.Info("application updated", "id", id, "job_role", record.JobRole)
	return nil
}

// Reset ends the submitted application and starts a new empty one
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInProgress
	}
	if s.mode != domain.ModeSubmitted {
		return ErrNotSubmitted
	}

	s.logger.Debug("application reset", "previous_id", s.id)

	s.record = domain.ApplicationRecord{}
	s.id = ""
	s.mode = domain.ModeEditing

	return nil
}

// KeypointsFor looks up the descriptive text for company
func (s *Session) KeypointsFor(company string) (string, bool) {
	return s.catalog.Keypoints(company)
}

// View is what the renderer needs to draw either the form or the confirmation
type View struct {
	Record     domain.ApplicationRecord
	ID         domain.RecordID
	Mode       domain.Mode
	Roles      []string
	Companies  []string
	Keypoints  string
	Submitting bool
}

// Snapshot returns a consistent copy of the session state
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Record:     s.record,
		ID:         s.id,
		Mode:       s.mode,
		Roles:      s.catalog.Roles(),
		Companies:  s.catalog.Companies(s.record.JobRole),
		Submitting: s.submitting,
	}
	if s.record.Company != "" {
		v.Keypoints, _ = s.catalog.Keypoints(s.record.Company)
	}

	return v
}
