package pocketbuddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StudyService handles the AI study tools: topics, flashcards and quizzes.
type StudyService struct {
	client *Client
}

// GenerateFlashcardsRequest asks for study cards on a topic.
type GenerateFlashcardsRequest struct {
	Topic     string     `json:"topic" validate:"required"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Count     int        `json:"count" validate:"gte=1,lte=30"`
}

// GenerateQuizRequest asks for a multiple-choice quiz on a topic.
type GenerateQuizRequest struct {
	Topic         string     `json:"topic" validate:"required"`
	SubjectID     *uuid.UUID `json:"subject_id,omitempty"`
	QuestionCount int        `json:"question_count" validate:"gte=1,lte=20"`
}

// Topics returns the themes available from active AI sources together with
// the subject catalog.
func (s *StudyService) Topics(ctx context.Context) (*Topics, error) {
	var topics Topics
	if err := s.client.get(ctx, "/topics", &topics); err != nil {
		return nil, err
	}
	return &topics, nil
}

// GenerateFlashcards generates study cards for a topic.
func (s *StudyService) GenerateFlashcards(ctx context.Context, req GenerateFlashcardsRequest) ([]Flashcard, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var resp struct {
		Flashcards []Flashcard `json:"flashcards"`
	}
	if err := s.client.post(ctx, "/flashcards/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Flashcards, nil
}

// GenerateQuiz generates a quiz for a topic. Every returned question is
// checked for internal consistency: its correct-answer letter must match one
// of its own options.
func (s *StudyService) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) ([]QuizQuestion, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	var resp struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := s.client.post(ctx, "/quiz/generate", req, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Questions {
		if err := resp.Questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("malformed quiz response: %w", err)
		}
	}
	return resp.Questions, nil
}
