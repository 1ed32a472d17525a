package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits.
const (
	MaxNameLength   = 200
	MaxSlugLength   = 100
	MaxPersonLength = 100
	MaxEmailLength  = 254
)

// ValidationError describes a rejected field value. Its message is shown to
// API callers as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseProjectStatus validates a project status string.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, st := range ProjectStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", invalid("status", "Invalid project status '%s' (valid: %s)", s, joinChoices(ProjectStatuses))
}

// ParseTaskStatus validates a task status string. Matching is case-insensitive
// so that "TODO" and "todo" land in the same column.
func ParseTaskStatus(s string) (TaskStatus, error) {
	lower := strings.ToLower(s)
	for _, st := range TaskStatuses {
		if string(st) == lower {
			return st, nil
		}
	}
	return "", invalid("status", "Invalid task status '%s' (valid: %s)", s, joinChoices(TaskStatuses))
}

// ParsePriority validates a task priority string.
func ParsePriority(s string) (Priority, error) {
	lower := strings.ToLower(s)
	for _, p := range Priorities {
		if string(p) == lower {
			return p, nil
		}
	}
	return "", invalid("priority", "Invalid priority '%s' (valid: %s)", s, joinChoices(Priorities))
}

// ValidateRequired rejects blank values and values over max runes.
func ValidateRequired(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "%s is required", Label(field))
	}
	return ValidateLength(field, value, max)
}

// ValidateLength rejects values over max runes.
func ValidateLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return invalid(field, "%s must be at most %d characters", Label(field), max)
	}
	return nil
}

// Validate checks an organization before it is stored.
func (o *Organization) Validate() error {
	if err := ValidateRequired("name", o.Name, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateRequired("slug", o.Slug, MaxSlugLength); err != nil {
		return err
	}
	if err := ValidateLength("contact_email", o.ContactEmail, MaxEmailLength); err != nil {
		return err
	}
	if o.ContactEmail != "" && !strings.Contains(o.ContactEmail, "@") {
		return invalid("contact_email", "Invalid contact email '%s'", o.ContactEmail)
	}
	return nil
}

// Validate checks a project before it is stored.
func (p *Project) Validate() error {
	if err := ValidateRequired("name", p.Name, MaxNameLength); err != nil {
		return err
	}
	if _, err := ParseProjectStatus(string(p.Status)); err != nil {
		return err
	}
	return nil
}

// Validate checks a task before it is stored.
func (t *Task) Validate() error {
	if err := ValidateRequired("title", t.Title, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateLength("assignee", t.Assignee, MaxPersonLength); err != nil {
		return err
	}
	if _, err := ParseTaskStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	return nil
}

// Validate checks a comment before it is stored.
func (c *Comment) Validate() error {
	if err := ValidateRequired("author", c.Author, MaxPersonLength); err != nil {
		return err
	}
	return ValidateRequired("content", c.Content, 1<<16)
}

func joinChoices[T ~string](choices []T) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
