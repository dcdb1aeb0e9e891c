package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidID     = errors.New("invalid project id")
	ErrCorruptData   = errors.New("stored project data is malformed")
	ErrSerialization = errors.New("project serialization failed")
)

// CorruptDataError reports a stored column that exists but cannot be decoded
// into its domain shape. It matches ErrCorruptData with errors.Is.
type CorruptDataError struct {
	ProjectID ProjectID
	Column    string
	Err       error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("project %s: column %s: %v", e.ProjectID, e.Column, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }
