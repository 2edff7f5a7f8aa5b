package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every answer-set validation failure.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a malformed answer set. It is a contract violation
// by the caller, not a user-facing condition.
type InputError struct {
	QuestionID string
	Reason     string
}

func (e *InputError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input for %q: %s", e.QuestionID, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(questionID, format string, args ...any) error {
	return &InputError{QuestionID: questionID, Reason: fmt.Sprintf(format, args...)}
}
