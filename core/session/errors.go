package session

import "errors"

var (
	// ErrOperationInFlight is returned when a login or register is started
	// while another one is still running. The store serializes these itself
	// rather than trusting every caller's busy flag.
	ErrOperationInFlight = errors.New("session: operation already in flight")
	// ErrAlreadyHydrated is returned when Rehydrate is called more than once.
	// Rehydration is a boot-time action only.
	ErrAlreadyHydrated = errors.New("session: already rehydrated")
	// ErrMalformedToken is returned when a stored token cannot be decoded
	// into identity claims.
	ErrMalformedToken = errors.New("session: malformed token")
	// ErrPersistToken is returned when the durable store rejects the token
	// write after a successful authentication.
	ErrPersistToken = errors.New("session: failed to persist token")
)
