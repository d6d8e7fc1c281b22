package question

import (
	"errors"
	"fmt"
)

var ErrInvalidQuestion = errors.New("invalid question")

// ValidationError reports a required or malformed field of a question payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQuestion
}
