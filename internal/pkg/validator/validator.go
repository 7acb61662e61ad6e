package validator

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO 8601 YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// IsValidUUID accepts the canonical hyphenated form only; uuid.Parse
// alone would also admit raw hex and URN variants.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
