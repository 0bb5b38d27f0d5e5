package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the client-side view of who is logged in, decoded from the
// token's claims segment without signature verification.
//
// This is a display-only convenience: IsPrivileged gates UI visibility
// (showing the admin panel link), never a server-side action. Every
// privileged operation is still authorized by the server against the
// signed token it receives.
type Identity struct {
	DisplayName  string
	IsPrivileged bool
}

// DecodeIdentity extracts identity claims from a JWT-shaped bearer token:
// three dot-separated segments with a base64url JSON payload in the
// middle. The signature is deliberately not verified; see Identity.
//
// DisplayName comes from the "name" claim, falling back to "sub".
// IsPrivileged is true only for an explicit is_admin:true claim.
func DecodeIdentity(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, errors.Join(ErrMalformedToken, err)
	}

	var identity Identity

	if name, ok := claims["name"].(string); ok && name != "" {
		identity.DisplayName = name
	} else if sub, ok := claims["sub"].(string); ok {
		identity.DisplayName = sub
	}

	if isAdmin, ok := claims["is_admin"].(bool); ok {
		identity.IsPrivileged = isAdmin
	}

	return identity, nil
}
