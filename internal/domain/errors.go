package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking
// infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidOTP covers both wrong and expired codes. The two cases are
	// deliberately indistinguishable to the caller.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrIdentityConflict means a contact identifier is already linked to a
	// different user.
	ErrIdentityConflict = errors.New("identity conflict")

	// ErrEventFull means the capacity ceiling was reached at check time.
	ErrEventFull = errors.New("event is full")

	// ErrAlreadyRegistered is surfaced when the store's uniqueness constraint
	// rejects a duplicate (user, event) registration.
	ErrAlreadyRegistered = errors.New("already registered")
)
