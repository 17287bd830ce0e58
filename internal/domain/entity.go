package domain

import (
	"time"
)

// EntityKind identifies the record type of a watched host entity.
type EntityKind string

// Watched entity kinds.
const (
	KindCompany EntityKind = "company"
	KindContact EntityKind = "contact"
)

// Valid reports whether the kind is one of the watched kinds.
func (k EntityKind) Valid() bool {
	return k == KindCompany || k == KindContact
}

// FallbackContactName is substituted into task text when a contact event
// carries no display name.
const FallbackContactName = "New Contact"

// EntityCreated is the normalized event produced by an extractor when a new
// company or contact record is detected in the host system. It is transient:
// consumed within the handling turn, never persisted or retried.
type EntityCreated struct {
	// ID is the opaque identifier the host assigned to the record.
	ID string `json:"id"`

	// Kind is the watched record type.
	Kind EntityKind `json:"kind"`

	// DisplayName is the human-readable name used in task text. May be
	// empty; consumers substitute FallbackContactName where needed.
	DisplayName string `json:"display_name"`

	// CreatedAt is the instant the event was detected. Detection is
	// asynchronous, so this is not necessarily the true creation instant.
	CreatedAt time.Time `json:"created_at"`
}

// NewEntityCreated builds a validated EntityCreated event stamped with the
// current detection time.
func NewEntityCreated(kind EntityKind, id, displayName string) (*EntityCreated, error) {
	e := &EntityCreated{
		ID:          id,
		Kind:        kind,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that the event carries the required fields.
func (e *EntityCreated) Validate() error {
	if e.ID == "" {
		return ErrEntityIDEmpty
	}
	if !e.Kind.Valid() {
		return ErrInvalidEntityKind
	}
	return nil
}

// DedupKey derives the session-scoped identity key for this event. At most
// one task is scheduled per key per process lifetime. When the extractor
// could not observe a name-bearing field the key omits the name component.
func (e *EntityCreated) DedupKey() string {
	if e.DisplayName == "" {
		return string(e.Kind) + ":" + e.ID
	}
	return string(e.Kind) + ":" + e.ID + ":" + e.DisplayName
}
