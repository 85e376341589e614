package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/domain/application"
)

// FormSession is the part of application.Session the form tools drive
type FormSession interface {
	SetField(name, value string) error
	Submit(ctx context.Context) error
	Reset() error
	KeypointsFor(company string) (string, bool)
	Snapshot() application.View
}

var _ FormSession = (*application.Session)(nil)

// FieldProblem is a presentation-level hint about an incomplete field
type FieldProblem struct {
	Field   string `json:"field" jsonschema:"Field name"`
	Message string `json:"message" jsonschema:"What is wrong with the value"`
}

// FormState is the rendered session: either the editable form or the confirmation
type FormState struct {
	ID         string                   `json:"id,omitempty" jsonschema:"Store identifier, set after the first successful submit"`
	Mode       string                   `json:"mode" jsonschema:"editing or submitted"`
	Fields     domain.ApplicationRecord `json:"fields" jsonschema:"Current field values"`
	Roles      []string                 `json:"roles" jsonschema:"Selectable job roles"`
	Companies  []string                 `json:"companies" jsonschema:"Companies offered for the current job role"`
	Keypoints  string                   `json:"keypoints,omitempty" jsonschema:"Key points of the selected company"`
	Submitting bool                     `json:"submitting" jsonschema:"True while a submit is outstanding"`
	Problems   []FieldProblem           `json:"problems,omitempty" jsonschema:"Fields that are still missing or malformed"`
}

func formStateFromView(v application.View) FormState {
	state := FormState{
		ID:         string(v.ID),
		Mode:       string(v.Mode),
		Fields:     v.Record,
		Roles:      append([]string{}, v.Roles...),
		Companies:  append([]string{}, v.Companies...),
		Keypoints:  v.Keypoints,
		Submitting: v.Submitting,
	}

	if v.Mode == domain.ModeEditing {
		for _, verr := range application.Validate(v.Record) {
			state.Problems = append(state.Problems, FieldProblem{
				Field:   string(verr.Field),
				Message: verr.Message,
			})
		}
	}

	return state
}

// renderForm draws the state as text: the editable form, or the
// confirmation once submitted
func renderForm(s FormState) string {
	var b strings.Builder

	if s.Mode == string(domain.ModeSubmitted) {
		b.WriteString("Thank you for signing up!\n")
		writeLine(&b, "Full Name", s.Fields.Name)
		writeLine(&b, "Age", s.Fields.Age)
		writeLine(&b, "Email", s.Fields.Email)
		if s.Fields.Experience != "" {
			writeLine(&b, "Experience", s.Fields.Experience+" years")
		}
		writeLine(&b, "Job Role", s.Fields.JobRole)
		writeLine(&b, "Preferred Company", s.Fields.Company)
		if s.Keypoints != "" {
			fmt.Fprintf(&b, "Key Points: %s\n", s.Keypoints)
		}
		if s.ID != "" {
			fmt.Fprintf(&b, "Application ID: %s\n", s.ID)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("Fill out the details to apply for a job\n")
	for _, f := range domain.Fields() {
		fmt.Fprintf(&b, "  %s: %s\n", f, s.Fields.Get(f))
	}
	fmt.Fprintf(&b, "Roles: %s\n", strings.Join(s.Roles, ", "))
	if len(s.Companies) > 0 {
		fmt.Fprintf(&b, "Companies for %s: %s\n", s.Fields.JobRole, strings.Join(s.Companies, ", "))
	}
	if s.ID != "" {
		fmt.Fprintf(&b, "Editing stored application %s\n", s.ID)
	}
	if s.Submitting {
		b.WriteString("Submitting...\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
