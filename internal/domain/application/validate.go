package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeycarbs/job-finder/internal/domain"
)

// Validate checks a record the way the form does before it lets a user submit:
// every field present, age and experience numeric. Submit does not call it.
func Validate(r domain.ApplicationRecord) []*ValidationError {
	var errs []*ValidationError

	for _, f := range domain.Fields() {
		if strings.TrimSpace(r.Get(f)) == "" {
			errs = append(errs, &ValidationError{Field: f, Message: fmt.Sprintf("%s required", f)})
		}
	}

	for _, f := range []domain.Field{domain.FieldAge, domain.FieldExperience} {
		v := strings.TrimSpace(r.Get(f))
		if v == "" {
			continue
		}
		if n, err := strconv.ParseFloat(v, 64); err != nil || n < 0 {
			errs = append(errs, &ValidationError{Field: f, Message: fmt.Sprintf("%s must be a non-negative number", f)})
		}
	}

	return errs
}
