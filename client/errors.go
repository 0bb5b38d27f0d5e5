package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for any 401 response. The configured
	// unauthorized handler has already run by the time callers see it.
	ErrUnauthorized = errors.New("client: unauthorized")
	// ErrTransport is returned for network-level failures where no server
	// error detail exists.
	ErrTransport = errors.New("client: transport failure")
)

// APIError is a structured server rejection. The dashboard API reports
// failures as {"detail": "..."}; Detail carries that message.
type APIError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %s", http.StatusText(e.Status))
	}
	return e.Detail
}

// ErrorDetail returns the user-facing message. Stores extract it through
// this method without importing the client package.
func (e *APIError) ErrorDetail() string {
	return e.Detail
}
