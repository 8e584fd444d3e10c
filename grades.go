package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GradesService handles grade (year level) administration.
type GradesService struct {
	client *Client
}

// CreateGradeRequest is the request for creating a grade.
type CreateGradeRequest struct {
	// Name is the display name, e.g. "1. ročník" (required).
	Name string `json:"name" validate:"required"`
	// Order positions the grade in the promotion sequence.
	Order int `json:"order" validate:"gte=1"`
}

// List returns all grades sorted by order.
func (s *GradesService) List(ctx context.Context) ([]Grade, error) {
	var grades []Grade
	if err := s.client.get(ctx, "/grades", &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

// Create creates a grade and returns the canonical entity with its
// server-assigned id.
func (s *GradesService) Create(ctx context.Context, req CreateGradeRequest) (*Grade, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var grade Grade
	if err := s.client.post(ctx, "/grades", req, &grade); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Delete removes a grade.
func (s *GradesService) Delete(ctx context.Context, gradeID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/grades/%s", gradeID), nil)
}
