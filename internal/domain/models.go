package domain

import (
	"strings"
	"time"
)

// RecordID is the opaque identifier the record store assigns on create
type RecordID string

func (id RecordID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Field names a single form field
type Field string

const (
	FieldName       Field = "name"
	FieldAge        Field = "age"
	FieldEmail      Field = "email"
	FieldExperience Field = "experience"
	FieldJobRole    Field = "jobRole"
	FieldCompany    Field = "company"
)

var fields = []Field{FieldName, FieldAge, FieldEmail, FieldExperience, FieldJobRole, FieldCompany}

// Fields returns the fixed field set in form order
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ParseField resolves a field by its wire name
func ParseField(name string) (Field, bool) {
	for _, f := range fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Mode selects which view the renderer shows
type Mode string

const (
	ModeEditing   Mode = "editing"
	ModeSubmitted Mode = "submitted"
)

// ApplicationRecord is the persisted job application.
// Age and Experience are kept as entered.
type ApplicationRecord struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Email      string `json:"email"`
	Experience string `json:"experience"`
	JobRole    string `json:"jobRole"`
	Company    string `json:"company"`
}

// Get returns the value of f
func (r ApplicationRecord) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldAge:
		return r.Age
	case FieldEmail:
		return r.Email
	case FieldExperience:
		return r.Experience
	case FieldJobRole:
		return r.JobRole
	case FieldCompany:
		return r.Company
	default:
		return ""
	}
}

// With returns a copy of r with f set to value
func (r ApplicationRecord) With(f Field, value string) ApplicationRecord {
	switch f {
	case FieldName:
		r.Name = value
	case FieldAge:
		r.Age = value
	case FieldEmail:
		r.Email = value
	case FieldExperience:
		r.Experience = value
	case FieldJobRole:
		r.JobRole = value
	case FieldCompany:
		r.Company = value
	}
	return r
}

func (r ApplicationRecord) IsZero() bool {
	return r == ApplicationRecord{}
}

// StoredApplication is a record as held by the store
type StoredApplication struct {
	ID        RecordID
	Record    ApplicationRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}
