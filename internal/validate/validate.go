// Package validate checks candidate client fields before they reach the
// record store. It is pure and stateless; the store trusts its verdict.
package validate

import (
	"regexp"
	"strings"

	"github.com/fitcrm/fitcrm/internal/models"
)

// Errors maps a failing field name to its message. Empty means valid.
type Errors map[string]string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Check applies the field rules to a candidate record. Age and gender are
// accepted as-is; that mirrors the original form, which never validated
// them.
func Check(f models.ClientFields) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if email := strings.TrimSpace(f.Email); email == "" || !emailRe.MatchString(email) {
		errs["email"] = "Enter a valid email"
	}
	if phone := strings.TrimSpace(f.Phone); len(phone) < 6 {
		errs["phone"] = "Enter a valid phone"
	}
	if strings.TrimSpace(f.Goal) == "" {
		errs["goal"] = "Fitness goal is required"
	}
	if strings.TrimSpace(f.StartDate) == "" {
		errs["startDate"] = "Start date is required"
	}

	return errs
}

// AsError wraps a non-empty error map in a models.ValidationError.
// Returns nil when the map is empty.
func (e Errors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return &models.ValidationError{Fields: e}
}
