package pocketbuddy

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// AttachmentsService handles chat file attachments.
type AttachmentsService struct {
	client *Client
}

// Upload stores a file for later linking to a chat message. A missing file is
// rejected locally with no multipart request sent.
func (s *AttachmentsService) Upload(ctx context.Context, fileName string, file io.Reader) (*Attachment, error) {
	if file == nil || fileName == "" {
		return nil, &Error{
			StatusCode: http.StatusBadRequest,
			Code:       codeValidation,
			Message:    "no file selected",
		}
	}
	var att Attachment
	if err := s.client.doMultipart(ctx, "/attachments/upload", fileName, file, nil, &att); err != nil {
		return nil, err
	}
	if att.FileName == "" {
		att.FileName = fileName
	}
	return &att, nil
}

// DownloadURL returns the direct download location for an attachment.
func (s *AttachmentsService) DownloadURL(attachmentID uuid.UUID) string {
	return fmt.Sprintf("%s%s/attachments/%s", s.client.baseURL, apiPrefix, attachmentID)
}
