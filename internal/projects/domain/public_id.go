package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProjectID is the immutable identity of a Project. It doubles as the
// storage primary key and the idempotency key for upserts.
type ProjectID struct {
	uuid.UUID
}

// NewProjectID generates a random (v4) project identifier.
func NewProjectID() ProjectID {
	return ProjectID{UUID: uuid.New()}
}

// ParseProjectID parses the canonical textual form of a project id.
func ParseProjectID(s string) (ProjectID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ProjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ProjectID{UUID: u}, nil
}

// IsZero reports whether the id was never assigned.
func (id ProjectID) IsZero() bool {
	return id.UUID == uuid.Nil
}
