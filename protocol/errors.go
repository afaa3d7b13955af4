package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrBadLength       = errors.New("packet has wrong length")
	ErrPayloadTooLarge = errors.New("payload exceeds transport limit")
	ErrDriverClosed    = errors.New("driver closed")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrInvalidSetting  = errors.New("setting out of range")
)

// FieldError reports the first packet field that failed validation. Only
// the diagnostic granularity depends on check order; the accept/reject
// result does not.
type FieldError struct {
	Field string
	Value int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s out of range: %d", e.Field, e.Value)
}
