package handler

import (
	"encoding/json"
	"net/http"

	"github.com/weekly-events/api/internal/application/auth"
	"github.com/weekly-events/api/internal/pkg/validate"
)

// AuthHandler handles OTP request and verification endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

type requestEmailOTPBody struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) RequestEmailOTP(w http.ResponseWriter, r *http.Request) {
	var body requestEmailOTPBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Valid email is required.")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "Valid email is required.")
		return
	}
	minutes, err := h.svc.RequestEmailOTP(r.Context(), body.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OtpEnvelope{Success: true, ExpiresInMinutes: minutes})
}

type requestPhoneOTPBody struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

func (h *AuthHandler) RequestPhoneOTP(w http.ResponseWriter, r *http.Request) {
	var body requestPhoneOTPBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Valid phone number is required.")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "Valid phone number is required.")
		return
	}
	minutes, err := h.svc.RequestPhoneOTP(r.Context(), body.PhoneNumber)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OtpEnvelope{Success: true, ExpiresInMinutes: minutes})
}

type verifyEmailOTPBody struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *AuthHandler) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var body verifyEmailOTPBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, user, err := h.svc.VerifyEmailOTP(r.Context(), auth.VerifyOTPRequest{
		Email:       body.Email,
		Code:        body.Code,
		Name:        body.Name,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, User: user.Public()})
}

type verifyPhoneOTPBody struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func (h *AuthHandler) VerifyPhoneOTP(w http.ResponseWriter, r *http.Request) {
	var body verifyPhoneOTPBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, user, err := h.svc.VerifyPhoneOTP(r.Context(), auth.VerifyOTPRequest{
		Email:       body.Email,
		Code:        body.Code,
		Name:        body.Name,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, User: user.Public()})
}
