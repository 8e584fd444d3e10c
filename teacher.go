package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TeacherService handles the calling teacher's subject assignments.
type TeacherService struct {
	client *Client
}

// AssignSubjectRequest links the calling teacher to a subject, optionally
// scoped to a grade.
type AssignSubjectRequest struct {
	SubjectID uuid.UUID  `json:"subject_id" validate:"required"`
	GradeID   *uuid.UUID `json:"grade_id,omitempty"`
}

// assignResponse is the backend's create acknowledgement.
type assignResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

// MySubjects returns the teacher's assignments with expanded subject and
// grade records.
func (s *TeacherService) MySubjects(ctx context.Context) ([]TeacherSubject, error) {
	var assignments []TeacherSubject
	if err := s.client.get(ctx, "/teacher/my-subjects", &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// AssignSubject creates an assignment and returns its server-assigned id.
func (s *TeacherService) AssignSubject(ctx context.Context, req AssignSubjectRequest) (uuid.UUID, error) {
	if err := validateStruct(req); err != nil {
		return uuid.Nil, err
	}
	var resp assignResponse
	if err := s.client.post(ctx, "/teacher/my-subjects", req, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

// RemoveSubject deletes one of the teacher's own assignments.
func (s *TeacherService) RemoveSubject(ctx context.Context, assignmentID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/teacher/my-subjects/%s", assignmentID), nil)
}
