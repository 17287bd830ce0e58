package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rosscornwall/hirehop-cleanup/internal/dedup"
	"github.com/rosscornwall/hirehop-cleanup/internal/events"
)

// SaveNotificationResponse is the body returned for an accepted
// notification.
type SaveNotificationResponse struct {
	Detected int `json:"detected"`
}

// HealthResponse is the body returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Processed int    `json:"processed"`
}

// SaveHandler receives save-complete notifications and feeds them through
// the extractors.
type SaveHandler struct {
	extractors []events.Extractor
	emitter    events.Emitter
	ledger     *dedup.Ledger
	logger     *slog.Logger
}

// NewSaveHandler creates the webhook handler.
func NewSaveHandler(
	extractors []events.Extractor,
	emitter events.Emitter,
	ledger *dedup.Ledger,
	logger *slog.Logger,
) *SaveHandler {
	return &SaveHandler{
		extractors: extractors,
		emitter:    emitter,
		ledger:     ledger,
		logger:     logger.With("component", "save_handler"),
	}
}

// SaveComplete handles POST /hooks/save-complete requests. The body carries
// one completed save operation. Extraction misses and downstream scheduling
// failures are not the caller's concern, so any well-formed notification is
// answered with 202.
func (h *SaveHandler) SaveComplete(w http.ResponseWriter, r *http.Request) {
	var n events.SaveNotification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid notification format")
		return
	}

	detected := 0
	for _, extractor := range h.extractors {
		entity, ok := extractor.Extract(n)
		if !ok {
			continue
		}
		detected++
		event := events.NewEntityCreatedEvent(extractor.Source(), *entity)
		if err := h.emitter.Emit(r.Context(), event); err != nil {
			// Handler failures stay on our side of the fence.
			h.logger.Error("event dispatch failed",
				"error", err,
				"source", extractor.Source(),
				"entity_id", entity.ID)
		}
	}

	respondWithJSON(w, http.StatusAccepted, SaveNotificationResponse{Detected: detected})
}

// Health handles GET /healthz requests.
func (h *SaveHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Processed: h.ledger.Len(),
	})
}

// respondWithJSON writes a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithError writes a JSON error response.
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
