package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrInvalidSubmission is the sentinel every [ValidationError] unwraps to.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// ValidationError lists the JSON names of every field that failed validation,
// in payload order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidSubmission.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}
