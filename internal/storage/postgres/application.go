package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

// applicationRow is the applications table
type applicationRow struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`

	Name       string `gorm:"not null;default:''"`
	Age        string `gorm:"not null;default:''"`
	Email      string `gorm:"not null;default:''"`
	Experience string `gorm:"not null;default:''"`
	JobRole    string `gorm:"not null;default:''"`
	Company    string `gorm:"not null;default:''"`
}

func (applicationRow) TableName() string {
	return "applications"
}

// ApplicationRepository stores applications in Postgres through GORM
type ApplicationRepository struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the applications table
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if err := db.AutoMigrate(&applicationRow{}); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return db, nil
}

// Closer adapts db to a shutdown hook that closes the connection pool
func Closer(db *gorm.DB) interface{ Shutdown(context.Context) error } {
	return dbCloser{db: db}
}

type dbCloser struct {
	db *gorm.DB
}

func (c dbCloser) Shutdown(context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("postgres: underlying pool: %w", err)
	}
	return sqlDB.Close()
}

// NewApplicationRepository wraps an open GORM handle
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// List returns applications, most recently updated first
func (r *ApplicationRepository) List(ctx context.Context) ([]domain.StoredApplication, error) {
	var rows []applicationRow
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: list applications: %w", err)
	}

	out := make([]domain.StoredApplication, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Create inserts record under a new UUID
func (r *ApplicationRepository) Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	row := fromDomain(record)
	row.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.StoredApplication{}, fmt.Errorf("postgres: create application: %w", err)
	}
	return row.toDomain(), nil
}

// Update overwrites every field of the application under id
func (r *ApplicationRepository) Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	var row applicationRow

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		next := fromDomain(record)
		next.ID = row.ID
		next.CreatedAt = row.CreatedAt

		// Save writes zero values too, so cleared fields are persisted
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		row = next
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.StoredApplication{}, err
		}
		return domain.StoredApplication{}, fmt.Errorf("postgres: update application: %w", err)
	}

	return row.toDomain(), nil
}

func fromDomain(record domain.ApplicationRecord) applicationRow {
	return applicationRow{
		Name:       record.Name,
		Age:        record.Age,
		Email:      record.Email,
		Experience: record.Experience,
		JobRole:    record.JobRole,
		Company:    record.Company,
	}
}

func (row applicationRow) toDomain() domain.StoredApplication {
	return domain.StoredApplication{
		ID: domain.RecordID(row.ID),
		Record: domain.ApplicationRecord{
			Name:       row.Name,
			Age:        row.Age,
			Email:      row.Email,
			Experience: row.Experience,
			JobRole:    row.JobRole,
			Company:    row.Company,
		},
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
