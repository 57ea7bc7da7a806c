package domain

// ValidationError reports malformed caller input. It is always the caller's
// fault and never worth retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
