package content

import (
	"errors"
	"fmt"
)

// ErrMalformedMetadata indicates the front matter delimiter is missing or the
// header could not be decoded. It aborts the collection build.
var ErrMalformedMetadata = errors.New("malformed front matter")

// ErrMissingField matches any MissingFieldError via errors.Is.
var ErrMissingField = errors.New("missing required field")

// ErrNotFound indicates a slug with no corresponding document. Unlike the
// parse errors it is recoverable and surfaces as a not-found response.
var ErrNotFound = errors.New("document not found")

// MissingFieldError reports which required front matter field was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
