package services

import "fmt"

// The error taxonomy the API boundary maps onto HTTP statuses. Multi-write
// operations roll back entirely on any of these; read-side derivations never
// produce them for missing optional fields.

// ValidationError marks malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (err *ValidationError) Error() string {
	return err.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a uniqueness or invariant violation, like a second open
// period or a card number already bound to another member.
type ConflictError struct {
	Message string
}

func (err *ConflictError) Error() string {
	return err.Message
}

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an absent referenced record.
type NotFoundError struct {
	Resource string
}

func (err *NotFoundError) Error() string {
	return err.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// StoreError wraps an underlying store failure. It is surfaced as-is; retry
// policy, if any, belongs to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (err *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", err.Op, err.Err)
}

func (err *StoreError) Unwrap() error {
	return err.Err
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
