// Package webhook exposes the HTTP surface that the WhatsApp connector
// posts inbound messages to. Routing and parsing only; all decisions
// belong to the engine.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Processor handles one inbound message end to end.
type Processor interface {
	Process(ctx context.Context, phone, text string) error
}

// Handler serves the webhook routes.
type Handler struct {
	engine Processor
	logger *zap.Logger
}

func NewHandler(engine Processor, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// Router builds the HTTP router with the webhook endpoints mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Post("/webhook/whatsapp", h.handleInbound)
	return r
}

type inboundPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

func (h *Handler) handleInbound(w http.ResponseWriter, r *http.Request) {
	var payload inboundPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	payload.From = strings.TrimSpace(payload.From)
	if payload.From == "" || strings.TrimSpace(payload.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	h.logger.Info("inbound message", zap.String("from", payload.From))

	// The engine already apologized to the user for anything that went
	// wrong; the connector only needs to know the message was consumed.
	if err := h.engine.Process(r.Context(), payload.From, payload.Message); err != nil {
		h.logger.Error("failed to process message",
			zap.String("from", payload.From),
			zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
