package service

import (
	"regexp"
	"strings"

	"github.com/maplegrovecc/communityhub/internal/model"
)

// phonePattern is the US-style format the public form collects: 555-123-4567.
var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

// validateIntake normalizes the request in place and returns field-level
// errors, keyed by JSON field name. An empty map means the shape is valid.
func validateIntake(req *model.CreateRegistrationRequest) map[string]string {
	errs := make(map[string]string)

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.ParticipationType = strings.TrimSpace(req.ParticipationType)

	if req.FirstName == "" {
		errs["firstName"] = "first name is required"
	}
	if req.LastName == "" {
		errs["lastName"] = "last name is required"
	}
	if req.Email == "" {
		errs["email"] = "email is required"
	} else if !isValidEmail(req.Email) {
		errs["email"] = "email is not a valid address"
	}
	if req.Phone == "" {
		errs["phone"] = "phone is required"
	} else if !phonePattern.MatchString(req.Phone) {
		errs["phone"] = "phone must match 555-123-4567"
	}
	if req.ParticipationType != "" && !model.ParticipationType(req.ParticipationType).Valid() {
		errs["participationType"] = "participation type must be participant or volunteer"
	}

	// Empty-string references are treated as absent, matching forms that
	// submit blank select fields.
	req.EventID = normalizeRef(req.EventID)
	req.ProgramID = normalizeRef(req.ProgramID)
	req.TripID = normalizeRef(req.TripID)

	return errs
}

func normalizeRef(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
