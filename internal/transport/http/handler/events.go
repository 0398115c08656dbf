package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/weekly-events/api/internal/application/event"
	"github.com/weekly-events/api/internal/pkg/validate"
	"github.com/weekly-events/api/internal/transport/http/middleware"
)

// EventHandler handles event listing and registration endpoints.
type EventHandler struct {
	svc event.Service
}

func NewEventHandler(svc event.Service) *EventHandler { return &EventHandler{svc: svc} }

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListUpcoming(r.Context(), time.Now())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EventsEnvelope{Events: events})
}

type registerBody struct {
	EventID string `json:"eventId" validate:"required"`
}

func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "eventId is required.")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "eventId is required.")
		return
	}
	count, err := h.svc.Register(r.Context(), claims.UserID, body.EventID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RegisterEnvelope{Success: true, RegistrationsCount: count})
}
