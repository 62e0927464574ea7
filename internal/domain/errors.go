package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden means the resource exists but belongs to someone else.
	// Kept distinct from ErrNotFound so handlers can avoid leaking existence
	// only where they choose to.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateApplication means a (user, job) pair already has an
	// application. Creation is not idempotent: a duplicate is a caller error.
	ErrDuplicateApplication = errors.New("application already exists for this job")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProvisioningError wraps a profile-creation failure that is not a benign
// duplicate race.
type ProvisioningError struct {
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("profile provisioning failed: %v", e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// AuditWriteError marks a failed audit append. An unaudited mutation is worse
// than a rejected request, so callers fail the whole operation on it.
type AuditWriteError struct {
	Err error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("audit write failed: %v", e.Err)
}

func (e *AuditWriteError) Unwrap() error { return e.Err }
