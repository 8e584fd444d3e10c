package pocketbuddy

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// SourcesService handles AI source files: uploaded documents the assistant
// uses as grounding material. Teachers see their own uploads, admins see all.
type SourcesService struct {
	client *Client
}

// UploadSourceRequest is a source upload: the file plus optional metadata.
type UploadSourceRequest struct {
	// FileName is the original file name (required).
	FileName string
	// File is the content to upload (required).
	File io.Reader
	// Description, SubjectID and GradeID are optional metadata; empty values
	// are omitted from the form entirely.
	Description string
	SubjectID   *uuid.UUID
	GradeID     *uuid.UUID
}

// UploadSourceResponse acknowledges an upload.
type UploadSourceResponse struct {
	Message  string    `json:"message"`
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	FileType string    `json:"file_type,omitempty"`
}

// UpdateSourceRequest is a partial metadata update. Nil fields are left
// untouched. The backend treats absent and null alike, so callers normalize
// empty form input to nil before building this request.
type UpdateSourceRequest struct {
	Description *string    `json:"description,omitempty"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty"`
	GradeID     *uuid.UUID `json:"grade_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// List returns the visible sources with expanded uploader, subject and grade
// names.
func (s *SourcesService) List(ctx context.Context) ([]AISource, error) {
	var sources []AISource
	if err := s.client.get(ctx, "/ai-sources", &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// Upload sends a source file as multipart form data. A missing file or file
// name is rejected locally; no request is issued.
func (s *SourcesService) Upload(ctx context.Context, req UploadSourceRequest) (*UploadSourceResponse, error) {
	if req.File == nil || req.FileName == "" {
		return nil, &Error{
			StatusCode: http.StatusBadRequest,
			Code:       codeValidation,
			Message:    "no file selected",
		}
	}

	fields := map[string]string{
		"description": req.Description,
	}
	if req.SubjectID != nil {
		fields["subject_id"] = req.SubjectID.String()
	}
	if req.GradeID != nil {
		fields["grade_id"] = req.GradeID.String()
	}

	var resp UploadSourceResponse
	if err := s.client.doMultipart(ctx, "/ai-sources/upload", req.FileName, req.File, fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update applies a metadata patch to a source.
func (s *SourcesService) Update(ctx context.Context, sourceID uuid.UUID, req UpdateSourceRequest) error {
	return s.client.put(ctx, fmt.Sprintf("/ai-sources/%s", sourceID), req, nil)
}

// Delete removes a source and its stored file.
func (s *SourcesService) Delete(ctx context.Context, sourceID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/ai-sources/%s", sourceID), nil)
}
