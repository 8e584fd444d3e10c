package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ChatsService handles AI conversations. Chat is request/response: sending a
// message blocks until the assistant's reply is stored and returns both sides.
type ChatsService struct {
	client *Client
}

// SendMessageRequest is one outgoing chat message with optional previously
// uploaded attachments.
type SendMessageRequest struct {
	Content       string      `json:"content" validate:"required"`
	AttachmentIDs []uuid.UUID `json:"attachment_ids,omitempty"`
}

// MessagePair is the stored user message and the assistant's reply.
type MessagePair struct {
	UserMessage *Message `json:"user_message"`
	AIMessage   *Message `json:"ai_message"`
}

// List returns the current user's chats, most recently updated first.
func (s *ChatsService) List(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	if err := s.client.get(ctx, "/chats", &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// Create starts a new conversation.
func (s *ChatsService) Create(ctx context.Context, title string) (*Chat, error) {
	body := map[string]string{"title": title}
	var chat Chat
	if err := s.client.post(ctx, "/chats", body, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Delete removes a conversation.
func (s *ChatsService) Delete(ctx context.Context, chatID uuid.UUID) error {
	return s.client.delete(ctx, fmt.Sprintf("/chats/%s", chatID), nil)
}

// Messages returns a chat's history in chronological order.
func (s *ChatsService) Messages(ctx context.Context, chatID uuid.UUID) ([]Message, error) {
	var messages []Message
	if err := s.client.get(ctx, fmt.Sprintf("/chats/%s/messages", chatID), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Send posts a message and waits for the assistant's reply.
func (s *ChatsService) Send(ctx context.Context, chatID uuid.UUID, req SendMessageRequest) (*MessagePair, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var pair MessagePair
	if err := s.client.post(ctx, fmt.Sprintf("/chats/%s/messages", chatID), req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
