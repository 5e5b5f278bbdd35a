package users

import (
	"strings"
	"unicode/utf8"
)

// MinNameLength is the minimum number of characters a user name must have.
const MinNameLength = 3

// ValidationError reports why a candidate name was rejected. Its message is
// sent to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: strings.ReplaceAll(format, "{field}", `"`+field+`"`),
	}
}

// ValidateName checks a raw "name" value taken from a request body. A nil
// value means the field was absent. On success the trimmed name is
// returned; otherwise the error is a *ValidationError.
func ValidateName(v any) (string, error) {
	if v == nil {
		return "", invalid("name", "{field} is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid("name", "{field} must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("name", "{field} is not allowed to be empty")
	}
	if utf8.RuneCountInString(s) < MinNameLength {
		return "", invalid("name", "{field} length must be at least 3 characters long")
	}
	return s, nil
}
