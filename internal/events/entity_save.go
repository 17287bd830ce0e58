package events

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/tidwall/gjson"
)

// EntitySaveConfig configures a kind-specific save-response extractor.
type EntitySaveConfig struct {
	// URLPattern is the substring identifying the kind-specific endpoint.
	URLPattern string

	// Kind is the entity kind saved through this endpoint.
	Kind domain.EntityKind
}

// EntitySaveExtractor recognizes creations on a kind-specific save endpoint.
// The response alone cannot distinguish insert from update, so the decision
// cross-references the outgoing request: an identifier of "0", 0, "", or an
// absent key marks the save as an insert. The outgoing payload arrives
// either query-encoded or as a structured object and both forms are handled
// identically.
type EntitySaveExtractor struct {
	cfg    EntitySaveConfig
	logger *slog.Logger
}

// NewEntitySaveExtractor creates an extractor for one kind-specific endpoint.
func NewEntitySaveExtractor(cfg EntitySaveConfig, logger *slog.Logger) *EntitySaveExtractor {
	return &EntitySaveExtractor{
		cfg:    cfg,
		logger: logger.With("component", "entity_save_extractor", "kind", string(cfg.Kind)),
	}
}

// Source implements Extractor.
func (x *EntitySaveExtractor) Source() string {
	return string(x.cfg.Kind) + "_save"
}

// Extract implements Extractor.
func (x *EntitySaveExtractor) Extract(n SaveNotification) (*domain.EntityCreated, bool) {
	if x.cfg.URLPattern == "" || !strings.Contains(n.URL, x.cfg.URLPattern) {
		return nil, false
	}

	if !gjson.Valid(n.Response) {
		x.logger.Debug("response is not valid JSON, ignoring signal", "url", n.URL)
		return nil, false
	}
	newID := gjson.Parse(n.Response).Get("id")
	if !truthy(newID) {
		return nil, false
	}

	req, ok := decodeRequestPayload(n.Request)
	if !ok {
		x.logger.Debug("unreadable outgoing payload, ignoring signal", "url", n.URL)
		return nil, false
	}

	if !req.wasNew() {
		// The request carried a real identifier, so this was an update.
		return nil, false
	}
	name := req.get("name")
	if name == "" {
		return nil, false
	}

	entity, err := domain.NewEntityCreated(x.cfg.Kind, newID.String(), name)
	if err != nil {
		x.logger.Debug("discarding invalid creation candidate", "error", err, "url", n.URL)
		return nil, false
	}

	x.logger.Debug("detected entity creation",
		"kind", entity.Kind,
		"entity_id", entity.ID,
		"display_name", entity.DisplayName)
	return entity, true
}

// requestPayload is the decoded outgoing save payload, unified over the
// query-encoded and structured forms.
type requestPayload struct {
	values url.Values
	object gjson.Result
}

// decodeRequestPayload reads a raw outgoing payload. The host delivers it
// as a JSON string holding query-encoded pairs, or as a JSON object.
func decodeRequestPayload(raw []byte) (requestPayload, bool) {
	if len(raw) == 0 {
		return requestPayload{}, false
	}
	parsed := gjson.ParseBytes(raw)
	switch parsed.Type {
	case gjson.String:
		values, err := url.ParseQuery(parsed.String())
		if err != nil {
			return requestPayload{}, false
		}
		return requestPayload{values: values}, true
	case gjson.JSON:
		if !parsed.IsObject() {
			return requestPayload{}, false
		}
		return requestPayload{object: parsed}, true
	default:
		return requestPayload{}, false
	}
}

// get returns the named field as a string, or "" when absent.
func (p requestPayload) get(field string) string {
	if p.values != nil {
		return p.values.Get(field)
	}
	return p.object.Get(field).String()
}

// wasNew reports whether the outgoing identifier marked the save as an
// insert. "0", 0, "", and an absent key are all equivalent "new" markers.
func (p requestPayload) wasNew() bool {
	id := p.get("id")
	return id == "" || id == "0"
}

// Ensure EntitySaveExtractor implements Extractor.
var _ Extractor = (*EntitySaveExtractor)(nil)
