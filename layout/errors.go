package layout

import "fmt"

// ValidationError is returned when a layout is inconsistent with itself or
// with the block it is applied to.
type ValidationError struct {
	Layout string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("layout %s: field %s: %s", e.Layout, e.Field, e.Reason)
	}
	return fmt.Sprintf("layout %s: %s", e.Layout, e.Reason)
}

// DecodeError is returned when a field's bytes cannot be interpreted
type DecodeError struct {
	Layout string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s.%s: %v", e.Layout, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
