package domain

import (
	"regexp"
	"strings"
)

// maxEmailLength follows the RFC 5321 path limit. Anything longer is junk.
const maxEmailLength = 320

// emailPattern is deliberately strict about shape (local@domain.tld) without
// attempting full RFC 5322 compliance. No MX or deliverability checks here.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailAddress is a syntactically valid email address. The zero value is
// unusable; ParseEmail is the only constructor.
type EmailAddress struct {
	addr string
}

// ParseEmail validates a raw string and wraps it as an EmailAddress.
// Leading and trailing whitespace is trimmed before validation.
func ParseEmail(raw string) (EmailAddress, error) {
	addr := strings.TrimSpace(raw)
	switch {
	case addr == "":
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "must not be empty"}
	case len(addr) > maxEmailLength:
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "exceeds maximum length"}
	case !strings.Contains(addr, "@"):
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "missing '@'"}
	case strings.HasPrefix(addr, "@"):
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "missing local part"}
	case strings.HasSuffix(addr, "@"):
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "missing domain"}
	case !emailPattern.MatchString(addr):
		return EmailAddress{}, &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	return EmailAddress{addr: addr}, nil
}

// String returns the underlying address for persistence and display.
func (e EmailAddress) String() string { return e.addr }

// IsZero reports whether the value was never constructed through ParseEmail.
func (e EmailAddress) IsZero() bool { return e.addr == "" }

// MarshalText lets EmailAddress serialize as its raw string in JSON.
func (e EmailAddress) MarshalText() ([]byte, error) { return []byte(e.addr), nil }
