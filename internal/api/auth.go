package api

import (
	"context"
	"net/url"
	"strconv"
)

// AuthService covers the /auth endpoints.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2-style form-encoded body, not JSON.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	if err := s.client.postForm(ctx, "/auth/login", form, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := s.client.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe replaces the authenticated user's profile. The server's response
// is the source of truth after an update, not the submitted body.
func (s *AuthService) UpdateMe(ctx context.Context, req UserUpdate) (*User, error) {
	var user User
	if err := s.client.put(ctx, "/auth/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) (*Ack, error) {
	var ack Ack
	req := PasswordChange{CurrentPassword: current, NewPassword: next}
	if err := s.client.put(ctx, "/auth/change-password", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// RefreshToken requests a fresh bearer token for the current session.
func (s *AuthService) RefreshToken(ctx context.Context) (*Token, error) {
	var token Token
	if err := s.client.post(ctx, "/auth/refresh-token", nil, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteAccount deactivates the authenticated user's account.
func (s *AuthService) DeleteAccount(ctx context.Context) (*Ack, error) {
	var ack Ack
	if err := s.client.delete(ctx, "/auth/delete-account", &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListUsers returns registered users. Development endpoint; the backend
// decides who may call it.
func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var users []User
	if err := s.client.get(ctx, "/auth/users", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}
