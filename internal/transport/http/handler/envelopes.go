package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/weekly-events/api/internal/domain"
)

// MessageEnvelope is the generic error/message response wrapper.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// OtpEnvelope wraps OTP request responses.
type OtpEnvelope struct {
	Success          bool `json:"success"`
	ExpiresInMinutes int  `json:"expiresInMinutes"`
}

// AuthEnvelope wraps successful OTP verification responses.
type AuthEnvelope struct {
	Token string             `json:"token"`
	User  *domain.PublicUser `json:"user"`
}

// EventsEnvelope wraps the event listing response.
type EventsEnvelope struct {
	Events []domain.EventWithCount `json:"events"`
}

// RegisterEnvelope wraps registration responses.
type RegisterEnvelope struct {
	Success            bool `json:"success"`
	RegistrationsCount int  `json:"registrationsCount"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

// httpError maps domain sentinel errors to their fixed status and message.
// Anything unclassified becomes a 500 with a generic body; the real error is
// only logged server-side.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOTP):
		writeError(w, http.StatusBadRequest, "Invalid or expired OTP.")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Invalid request.")
	case errors.Is(err, domain.ErrEventFull):
		writeError(w, http.StatusBadRequest, "Event is full.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Event not found.")
	case errors.Is(err, domain.ErrIdentityConflict):
		writeError(w, http.StatusConflict, "This contact is already linked to another user. Please use a different one.")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "Already registered.")
	default:
		slog.Error("unexpected error", "err", err)
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
	}
}
