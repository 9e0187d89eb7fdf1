package auth

import (
	"regexp"
	"sort"
	"strings"
)

// emailPattern mirrors the RFC 5322 address shape: a printable local part and
// dot-separated alphanumeric labels in the domain.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

var (
	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

// ValidationError carries per-field messages for user-correctable input
// problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "auth: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "auth: validation failed: " + strings.Join(parts, "; ")
}

// SignupInput is the raw signup payload before validation.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func validateSignup(in SignupInput) *ValidationError {
	fields := make(map[string]string)

	if len(strings.TrimSpace(in.FirstName)) == 0 {
		fields["firstName"] = "Please enter a first name"
	} else if len(strings.TrimSpace(in.FirstName)) < 2 {
		fields["firstName"] = "Name must be at least 2 characters long"
	}
	if trimmed := strings.TrimSpace(in.LastName); trimmed != "" && len(trimmed) < 2 {
		fields["lastName"] = "Name must be at least 2 characters long"
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields["email"] = "Please enter an email address"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "Please enter a valid email address"
	}

	if err := validatePassword(in.Password); err != "" {
		fields["password"] = err
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validatePassword(password string) string {
	if password == "" {
		return "Please enter a password"
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasDigit.MatchString(password) {
		return "Password must contain at least one uppercase letter, one lowercase letter and one number"
	}
	return ""
}
