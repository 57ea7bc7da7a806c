package domain

import (
	"strings"
	"unicode"
)

// maxNameLength bounds stored display names.
const maxNameLength = 256

// forbiddenNameRunes are characters we never want in a display name. They are
// the usual suspects for header injection and template breakage.
const forbiddenNameRunes = `/()"<>\{}`

// DisplayName is a validated human-readable subscriber name. The zero value
// is unusable; ParseName is the only constructor.
type DisplayName struct {
	name string
}

// ParseName validates a raw string and wraps it as a DisplayName.
func ParseName(raw string) (DisplayName, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DisplayName{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > maxNameLength {
		return DisplayName{}, &ValidationError{Field: "name", Reason: "exceeds maximum length"}
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return DisplayName{}, &ValidationError{Field: "name", Reason: "contains control characters"}
		}
		if strings.ContainsRune(forbiddenNameRunes, r) {
			return DisplayName{}, &ValidationError{Field: "name", Reason: "contains forbidden characters"}
		}
	}
	return DisplayName{name: name}, nil
}

// String returns the underlying name for persistence and display.
func (d DisplayName) String() string { return d.name }

// IsZero reports whether the value was never constructed through ParseName.
func (d DisplayName) IsZero() bool { return d.name == "" }

// MarshalText lets DisplayName serialize as its raw string in JSON.
func (d DisplayName) MarshalText() ([]byte, error) { return []byte(d.name), nil }
