package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AdminService handles user administration. Every operation requires the
// admin role; other roles receive a forbidden error.
type AdminService struct {
	client *Client
}

// UpdateUserRequest is a partial user update. Nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	GradeID   *uuid.UUID `json:"grade_id,omitempty"`
	ClassID   *uuid.UUID `json:"class_id,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

// Users returns every account.
func (s *AdminService) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RegistrationRequests returns the pending registration submissions.
func (s *AdminService) RegistrationRequests(ctx context.Context) ([]RegistrationRequest, error) {
	var reqs []RegistrationRequest
	if err := s.client.get(ctx, "/admin/registration-requests", &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ApproveRegistration approves a pending registration, activating the account.
func (s *AdminService) ApproveRegistration(ctx context.Context, requestID uuid.UUID) error {
	return s.client.post(ctx, fmt.Sprintf("/admin/approve/%s", requestID), nil, nil)
}

// RejectRegistration rejects a pending registration and removes the
// provisional account.
func (s *AdminService) RejectRegistration(ctx context.Context, requestID uuid.UUID) error {
	return s.client.post(ctx, fmt.Sprintf("/admin/reject/%s", requestID), nil, nil)
}

// UpdateUser applies a partial update. The backend acknowledges with a
// message only; fetch Users again for the merged record.
func (s *AdminService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) error {
	return s.client.put(ctx, fmt.Sprintf("/admin/users/%s", userID), req, nil)
}

// DeleteUser permanently removes an account and its chats. Deleting your own
// account is rejected by the backend.
func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/users/%s", userID), nil)
}

// DeactivateUser blocks an account from logging in without deleting it.
func (s *AdminService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	return s.client.post(ctx, fmt.Sprintf("/admin/users/%s/deactivate", userID), nil, nil)
}

// ActivateUser re-enables a deactivated account.
func (s *AdminService) ActivateUser(ctx context.Context, userID uuid.UUID) error {
	return s.client.post(ctx, fmt.Sprintf("/admin/users/%s/activate", userID), nil, nil)
}

// PromoteGrade moves a student to the grade with the next order value.
// Fails for non-students, students without a grade, and final-grade students.
func (s *AdminService) PromoteGrade(ctx context.Context, userID uuid.UUID) error {
	return s.client.post(ctx, fmt.Sprintf("/admin/users/%s/promote-grade", userID), nil, nil)
}

// Statistics returns the dashboard aggregate counts.
func (s *AdminService) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := s.client.get(ctx, "/admin/statistics", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
