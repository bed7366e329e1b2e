package services

import "fmt"

// StoreError wraps any I/O failure from the backing record store. It is
// always surfaced to the caller; nothing in this package retries.
type StoreError struct {
	Op  string // failing store operation, e.g. "attendance.upsert"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// PolicyViolation rejects a write to a date outside the edit window. It is
// raised before any I/O happens.
type PolicyViolation struct {
	Date   string // YYYY-MM-DD
	Reason string
}

func (e *PolicyViolation) Error() string {
	return fmt.Sprintf("attendance for %s is not editable: %s", e.Date, e.Reason)
}

// ValidationError rejects malformed input (unknown status, missing
// identifier, bad date) before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
