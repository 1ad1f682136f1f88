package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viant/transcript/client/auth/renewal"
)

// Session describes the signed in user
type Session struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Profile represents authenticated user profile
type Profile struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and starts a session
func (c *Client) Signup(ctx context.Context, email, password, displayName string) (*Session, error) {
	return c.authenticate(ctx, "signup", "/auth/signup", &signupRequest{Email: email, Password: password, DisplayName: displayName}, "Signup failed")
}

// Login starts a session
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "login", "/auth/login", &loginRequest{Email: email, Password: password}, "Login failed")
}

func (c *Client) authenticate(ctx context.Context, op, path string, payload interface{}, fallback string) (*Session, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	status, body, err := c.send(ctx, http.MethodPost, path, bytes.NewReader(data), Unauthenticated(), WithContentType("application/json"))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newServerError(op, status, body, fallback)
	}
	grant, err := renewal.DecodeTokenResponse(body)
	if err != nil || grant.IDToken == "" {
		return nil, &OperationError{Message: fallback, Cause: err}
	}
	credential := grant.Credential(c.now())
	if !credential.IsComplete() {
		return nil, &OperationError{Message: fallback, Cause: errors.New("incomplete token grant")}
	}
	// a complete grant replaces every field, a failed save keeps the prior session
	if err = c.store.Save(ctx, credential); err != nil {
		return nil, err
	}
	return &Session{UID: grant.UID, Email: grant.Email, DisplayName: grant.DisplayName}, nil
}

// Logout ends the session locally
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Profile returns authenticated user profile
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	status, body, err := c.send(ctx, http.MethodGet, "/auth/me", nil)
	if err == nil && !isSuccess(status) {
		err = newServerError("profile", status, body, "")
	}
	ret := &Profile{}
	if err == nil {
		err = decodeResponse("profile", body, ret)
	}
	if err != nil {
		return nil, &OperationError{Message: "failed to fetch profile", Cause: err}
	}
	return ret, nil
}
