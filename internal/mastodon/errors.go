package mastodon

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMalformedJSON = errors.New("malformed json")
	ErrMissingField  = errors.New("missing required field")
	ErrTypeMismatch  = errors.New("type mismatch")
)

// DecodeError reports the JSON key that could not be decoded.
// Err is one of ErrMissingField or ErrTypeMismatch.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &DecodeError{Field: field, Err: ErrMissingField}
}

func typeMismatch(field string) error {
	return &DecodeError{Field: field, Err: ErrTypeMismatch}
}
