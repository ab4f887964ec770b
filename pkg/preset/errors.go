package preset

import "fmt"

// ValidationError identifies the submission field that failed
// validation. Every violation is fatal for the whole generation
// request; nothing is written once one is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission field %q: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
