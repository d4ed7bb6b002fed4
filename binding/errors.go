package binding

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against an *Error.
var (
	ErrMissing = errors.New("binding: missing value")
	ErrInvalid = errors.New("binding: invalid value")
)

// Reason classifies a binding failure.
type Reason int

const (
	// Missing means a required value had no source value and no default.
	Missing Reason = iota
	// Invalid means the source value could not be converted to the target type.
	Invalid
)

func (r Reason) String() string {
	switch r {
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Error reports a value that could not be bound. Callers can tell a client
// mistake (an *Error) from an I/O or programming failure with errors.As.
type Error struct {
	Source Source
	Key    string
	Value  string
	Reason Reason
	// Item is the position inside a comma-separated value, or -1.
	Item int
	// Err is the parser failure for Invalid errors.
	Err error
}

func missing(source Source, key string) *Error {
	return &Error{Source: source, Key: key, Reason: Missing, Item: -1}
}

func invalid(source Source, key, value string, err error) *Error {
	return &Error{Source: source, Key: key, Value: value, Reason: Invalid, Item: -1, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Reason == Missing:
		return fmt.Sprintf("binding: %s key '%s' is required", e.Source, e.Key)
	case e.Item >= 0:
		return fmt.Sprintf("binding: failed to parse item #%d from value %q for %s key '%s': %v", e.Item, e.Value, e.Source, e.Key, e.Err)
	default:
		return fmt.Sprintf("binding: failed to parse %s key '%s' with value %q: %v", e.Source, e.Key, e.Value, e.Err)
	}
}

// Unwrap exposes the reason sentinel and, for Invalid errors, the parser error.
func (e *Error) Unwrap() []error {
	if e.Reason == Missing {
		return []error{ErrMissing}
	}
	if e.Err == nil {
		return []error{ErrInvalid}
	}
	return []error{ErrInvalid, e.Err}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
