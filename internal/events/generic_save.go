package events

import (
	"log/slog"
	"strings"

	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/tidwall/gjson"
)

// SourceGenericSave identifies events produced by the generic-save extractor.
const SourceGenericSave = "generic_save"

// GenericSaveConfig configures the generic save-response extractor. Field
// names default to the host's contacts-module row shape.
type GenericSaveConfig struct {
	// URLPattern is the substring identifying the shared save endpoint.
	URLPattern string

	// Kind is the entity kind this extractor watches for.
	Kind domain.EntityKind

	// IDField is the row field carrying the record identifier.
	IDField string

	// NameField is the row field carrying the record display name.
	NameField string

	// ConfirmField is the secondary foreign-key field that confirms the row
	// is a record of the watched kind. The shared endpoint serves unrelated
	// saves too, so all three fields must be present before a row counts.
	ConfirmField string
}

// DefaultGenericSaveConfig returns the extractor configuration matching the
// host's stock contacts module.
func DefaultGenericSaveConfig() GenericSaveConfig {
	return GenericSaveConfig{
		URLPattern:   "save.php",
		Kind:         domain.KindCompany,
		IDField:      "ID",
		NameField:    "COMPANY",
		ConfirmField: "cID",
	}
}

// GenericSaveExtractor recognizes entity creations in responses from the
// host's shared save endpoint. A creation requires the response-level insert
// marker (action == 1) and a first data row carrying the identifier, name,
// and confirming foreign-key fields all at once.
type GenericSaveExtractor struct {
	cfg    GenericSaveConfig
	logger *slog.Logger
}

// NewGenericSaveExtractor creates a generic-save extractor.
func NewGenericSaveExtractor(cfg GenericSaveConfig, logger *slog.Logger) *GenericSaveExtractor {
	return &GenericSaveExtractor{
		cfg:    cfg,
		logger: logger.With("component", "generic_save_extractor"),
	}
}

// Source implements Extractor.
func (x *GenericSaveExtractor) Source() string { return SourceGenericSave }

// Extract implements Extractor.
func (x *GenericSaveExtractor) Extract(n SaveNotification) (*domain.EntityCreated, bool) {
	if x.cfg.URLPattern == "" || !strings.Contains(n.URL, x.cfg.URLPattern) {
		return nil, false
	}

	if !gjson.Valid(n.Response) {
		x.logger.Debug("response is not valid JSON, ignoring signal", "url", n.URL)
		return nil, false
	}
	body := gjson.Parse(n.Response)

	// action == 1 marks an insert; anything else is an update or unrelated.
	if body.Get("action").Int() != 1 {
		return nil, false
	}

	row := body.Get("data.0")
	if !row.Exists() {
		return nil, false
	}

	id := row.Get(x.cfg.IDField)
	name := row.Get(x.cfg.NameField)
	confirm := row.Get(x.cfg.ConfirmField)
	if !truthy(id) || !truthy(name) || !truthy(confirm) {
		// Partial matches are other saves sharing the endpoint, not ours.
		return nil, false
	}

	entity, err := domain.NewEntityCreated(x.cfg.Kind, id.String(), name.String())
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

// truthy reports whether a loosely-typed field is present and non-zero in
// the host's sense: absent, "", "0", 0, false, and null all fail.
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	default:
		return r.String() != "" && r.String() != "0"
	}
}

// Ensure GenericSaveExtractor implements Extractor.
var _ Extractor = (*GenericSaveExtractor)(nil)
