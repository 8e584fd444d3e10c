package pocketbuddy

import (
	"context"

	"github.com/google/uuid"
)

// AuthService handles authentication operations.
type AuthService struct {
	client *Client
}

// LoginResponse is the result of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterRequest is a registration submission. Accounts require admin
// approval before the first login, so registering never grants a session.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	// Role may be student or teacher; admins are created by other admins.
	Role Role `json:"role" validate:"required,oneof=student teacher"`
	// GradeID is required when registering as a student.
	GradeID *uuid.UUID `json:"grade_id,omitempty" validate:"required_if=Role student"`
}

// Login exchanges credentials for a bearer token and the authenticated user.
//
// The token is returned, not installed; callers (normally the session store)
// decide where it lives.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register submits a registration request. The submission is validated
// locally first; a local validation error never reaches the wire.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	return s.client.post(ctx, "/auth/register", req, nil)
}

// Me validates the installed credential and returns the current identity.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
