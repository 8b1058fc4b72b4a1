package sla

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or incomplete evaluator input. Bad data is
// never silently treated as "no breach"; the caller decides the fallback.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
