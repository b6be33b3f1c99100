package backend

import (
	"context"
	"net/http"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// AuthSession is what a successful login or registration yields: the profile
// plus the bearer token some backend builds hand out alongside the cookie.
type AuthSession struct {
	User        domain.User
	AccessToken string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// user tolerates both response shapes the backend uses: the profile at the
// top level (login) or nested under "user" (registration, check_session).
func (p userPayload) user() domain.User {
	if p.User != nil {
		return *p.User
	}
	return domain.User{ID: p.ID, Username: p.Username, Email: p.Email}
}

// Login posts credentials to POST /login.
func (c *Client) Login(ctx context.Context, username, password string) (AuthSession, error) {
	var resp userPayload
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, &resp, "Authentication failed")
	if err != nil {
		return AuthSession{}, err
	}
	return AuthSession{User: resp.user(), AccessToken: resp.AccessToken}, nil
}

// CheckSession restores an existing server-side session via GET
// /check_session. The session cookie in the client's jar carries identity.
func (c *Client) CheckSession(ctx context.Context) (domain.User, error) {
	var resp userPayload
	if err := c.do(ctx, http.MethodGet, "/check_session", nil, &resp, "Session check failed"); err != nil {
		return domain.User{}, err
	}
	return resp.user(), nil
}

// Register creates a new account via POST /user_auth.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (AuthSession, error) {
	var resp userPayload
	if err := c.do(ctx, http.MethodPost, "/user_auth", reg, &resp, "Signup failed"); err != nil {
		return AuthSession{}, err
	}
	return AuthSession{User: resp.user(), AccessToken: resp.AccessToken}, nil
}

type updatePasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// UpdatePassword changes the account password via PATCH /user_auth.
func (c *Client) UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	req := updatePasswordRequest{Username: username, Password: currentPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPatch, "/user_auth", req, nil, "Password update failed")
}

// DeleteAccount removes the account via DELETE /user_auth.
func (c *Client) DeleteAccount(ctx context.Context, username, password string) error {
	req := loginRequest{Username: username, Password: password}
	return c.do(ctx, http.MethodDelete, "/user_auth", req, nil, "Account deletion failed")
}

// Logout tears down the server-side session via POST /logout. Callers treat
// the result as advisory: local logout proceeds either way.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, "Logout failed")
}
