package events

import (
	"encoding/json"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
)

// SaveNotification is the raw signal delivered after each host save
// operation completes: the request target, the outgoing payload, and the
// response body. No shape beyond that is assumed; each extractor documents
// what it reads.
type SaveNotification struct {
	// URL is the request target of the completed save operation.
	URL string `json:"url"`

	// Status is the HTTP status of the completed operation.
	Status int `json:"status"`

	// Request is the outgoing payload. The host delivers it either as a
	// query-encoded string or as a structured object; extractors must treat
	// both forms identically.
	Request json.RawMessage `json:"request,omitempty"`

	// Response is the raw response body text.
	Response string `json:"response"`
}

// Extractor inspects one raw save signal and emits a normalized entity
// creation, or nothing. The boolean result is false whenever the signal is
// malformed, partial, or ambiguous.
type Extractor interface {
	// Source names the extractor for event attribution and logging.
	Source() string

	// Extract returns the detected creation and true, or nil and false.
	Extract(n SaveNotification) (*domain.EntityCreated, bool)
}
