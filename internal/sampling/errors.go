package sampling

import (
	"errors"
	"fmt"
)

// Sampling errors.
var (
	// ErrInvalidParameter is returned when an estimate cannot parameterise a distribution.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotComputable is returned when a bounded draw runs out of attempts.
	ErrNotComputable = errors.New("distribution not computable")
)

// ParamError labels an input-validation failure with the offending field.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidParameter, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParameter, e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidParam builds a ParamError.
func InvalidParam(field, format string, args ...any) error {
	return &ParamError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WithField prefixes the field path of a ParamError. Other errors pass through.
func WithField(err error, field string) error {
	var pe *ParamError
	if !errors.As(err, &pe) {
		return err
	}
	path := field
	if pe.Field != "" {
		path = field + "." + pe.Field
	}
	return &ParamError{Field: path, Reason: pe.Reason}
}
