package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ClassesService handles class administration.
type ClassesService struct {
	client *Client
}

// CreateClassRequest is the request for creating a class.
type CreateClassRequest struct {
	Name    string    `json:"name" validate:"required"`
	GradeID uuid.UUID `json:"grade_id" validate:"required"`
}

// List returns all classes.
func (s *ClassesService) List(ctx context.Context) ([]Class, error) {
	var classes []Class
	if err := s.client.get(ctx, "/classes", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Create creates a class within a grade.
func (s *ClassesService) Create(ctx context.Context, req CreateClassRequest) (*Class, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var class Class
	if err := s.client.post(ctx, "/classes", req, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// Delete removes a class.
func (s *ClassesService) Delete(ctx context.Context, classID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/classes/%s", classID), nil)
}
