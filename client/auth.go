package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// TokenResponse is the login payload: a bare OAuth2-style token pair.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is a dashboard account as the API reports it.
type User struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Attributes []string  `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterRequest creates an account. Attributes is the privilege list
// ("admin" being the only defined value today) and is usually empty.
type RegisterRequest struct {
	Name       string   `json:"name"`
	Password   string   `json:"password"`
	Attributes []string `json:"attributes"`
}

// RegisterResponse nests the token one level deeper than login does.
// The two shapes must not be conflated.
type RegisterResponse struct {
	User  User          `json:"user"`
	Token TokenResponse `json:"token"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangeUsernameRequest renames the account.
type ChangeUsernameRequest struct {
	NewName string `json:"new_name"`
}

// MessageResponse is the generic {"message": ...} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ChangeUsernameResponse acknowledges a rename with the new name.
type ChangeUsernameResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// Login exchanges credentials for a bearer token. The endpoint is
// form-encoded (OAuth2 password flow), unlike the rest of the API.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	var out TokenResponse
	if err := c.postForm(ctx, "/auth/login", form, &out); err != nil {
		return TokenResponse{}, err
	}
	return out, nil
}

// Register creates an account and returns the seamless-registration token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if req.Attributes == nil {
		req.Attributes = []string{}
	}

	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return RegisterResponse{}, err
	}
	return out, nil
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// ChangePassword rotates the password of the authenticated account.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPut, "/auth/change-password", nil, req, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// ChangeUsername renames the authenticated account.
func (c *Client) ChangeUsername(ctx context.Context, req ChangeUsernameRequest) (ChangeUsernameResponse, error) {
	var out ChangeUsernameResponse
	if err := c.do(ctx, http.MethodPut, "/auth/change-username", nil, req, &out); err != nil {
		return ChangeUsernameResponse{}, err
	}
	return out, nil
}

// SessionAuth adapts the client to the session store's Authenticator
// interface without either package importing the other's contract.
type SessionAuth struct {
	Client *Client
}

// Login implements session.Authenticator.
func (a SessionAuth) Login(ctx context.Context, identifier, secret string) (string, error) {
	resp, err := a.Client.Login(ctx, identifier, secret)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register implements session.Authenticator. The token rides one level
// deeper in the registration response.
func (a SessionAuth) Register(ctx context.Context, name, password string, attributes []string) (string, error) {
	resp, err := a.Client.Register(ctx, RegisterRequest{
		Name:       name,
		Password:   password,
		Attributes: attributes,
	})
	if err != nil {
		return "", err
	}
	return resp.Token.AccessToken, nil
}
