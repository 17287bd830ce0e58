package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEntityIDEmpty is returned when an entity-creation event carries no
	// host-assigned identifier.
	ErrEntityIDEmpty = errors.New("entity ID cannot be empty")

	// ErrInvalidEntityKind is returned when an entity kind is not one of the
	// watched kinds.
	ErrInvalidEntityKind = errors.New("invalid entity kind")

	// ErrTaskTitleEmpty is returned when a task request is built with an
	// empty title.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskLinkEmpty is returned when a task request is not linked to an
	// entity.
	ErrTaskLinkEmpty = errors.New("task must be linked to an entity")
)
