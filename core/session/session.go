package session

import (
	"context"

	"github.com/hashpool/poolkit/core/validator"
)

// Status is the authentication state of the client.
type Status string

const (
	// StatusUnauthenticated means no session exists.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusAuthenticating means a login or register call is in flight.
	StatusAuthenticating Status = "authenticating"
	// StatusAuthenticated means a token is held and trusted for UI purposes.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the last login or register attempt failed.
	StatusError Status = "error"
)

// Credentials is the login form payload. Validate belongs to the UI layer:
// a form that fails validation never reaches the store or the network.
type Credentials struct {
	Identifier string `validate:"required;min:3;max:64"`
	Secret     string `validate:"required;min:8;max:128"`
}

// Validate checks the form constraints.
func (c Credentials) Validate() error {
	return validator.ValidateStruct(&c)
}

// Profile is the registration form payload. Attributes carries privilege
// names and stays empty for self-service signups.
type Profile struct {
	Name       string `validate:"required;min:3;max:64;alphanum"`
	Password   string `validate:"required;min:8;max:128"`
	Attributes []string
}

// Validate checks the form constraints.
func (p Profile) Validate() error {
	return validator.ValidateStruct(&p)
}

// Authenticator is the slice of the API the session store needs. The
// client package satisfies it through its SessionAuth adapter.
type Authenticator interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, identifier, secret string) (string, error)
	// Register creates an account and returns its seamless-registration token.
	Register(ctx context.Context, name, password string, attributes []string) (string, error)
}
