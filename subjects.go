package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SubjectsService handles subject administration.
type SubjectsService struct {
	client *Client
}

// CreateSubjectRequest is the request for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// List returns all subjects.
func (s *SubjectsService) List(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := s.client.get(ctx, "/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Create creates a subject.
func (s *SubjectsService) Create(ctx context.Context, req CreateSubjectRequest) (*Subject, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var subject Subject
	if err := s.client.post(ctx, "/subjects", req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Delete removes a subject.
func (s *SubjectsService) Delete(ctx context.Context, subjectID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/subjects/%s", subjectID), nil)
}
