package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrCandidateNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "candidate")
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

func NewErrTalentProfileNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "talent profile")
}

type ErrConcurrentModification struct {
	error
}

func NewErrConcurrentModification(id uuid.UUID, expectedVersion int) *ErrConcurrentModification {
	return &ErrConcurrentModification{fmt.Errorf("entity %s changed since version %d was read; retry against fresh state", id, expectedVersion)}
}

// ErrEntityCorrupted wraps an integrity violation detected on a persisted
// record. Transitions on the entity are refused until it is manually
// reconciled.
type ErrEntityCorrupted struct {
	error
}

func NewErrEntityCorrupted(id uuid.UUID, cause error) *ErrEntityCorrupted {
	return &ErrEntityCorrupted{fmt.Errorf("entity %s has corrupted state: %w", id, cause)}
}

type ErrInvalidForm struct {
	error
}

func NewErrInvalidForm(cause error) *ErrInvalidForm {
	return &ErrInvalidForm{fmt.Errorf("invalid form: %w", cause)}
}
