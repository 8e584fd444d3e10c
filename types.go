package pocketbuddy

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Unknown role strings are rejected
// at construction time rather than silently compared.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UnmarshalJSON rejects unknown role values.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// User is the backend-owned account record. The client holds a read-mostly
// copy inside the session.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       Role       `json:"role"`
	IsApproved bool       `json:"is_approved"`
	IsActive   bool       `json:"is_active"`
	GradeID    *uuid.UUID `json:"grade_id,omitempty"`
	ClassID    *uuid.UUID `json:"class_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}

// FullName returns "First Last" for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Grade is a school year level. Order is server-assigned and defines the
// display and promotion sequence.
type Grade struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// Class is a named group of students within a grade.
type Class struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	GradeID   uuid.UUID `json:"grade_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject is a taught subject.
type Subject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeacherSubject is a teacher's subject assignment, expanded with the
// referenced subject and grade.
type TeacherSubject struct {
	ID        uuid.UUID `json:"id"`
	Subject   *Subject  `json:"subject"`
	Grade     *Grade    `json:"grade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AISource is an uploaded grounding file for the AI features. The file itself
// is opaque to the client beyond this metadata.
type AISource struct {
	ID               uuid.UUID  `json:"id"`
	UploadedByUserID uuid.UUID  `json:"uploaded_by_user_id"`
	UploadedByName   string     `json:"uploaded_by_name,omitempty"`
	SubjectID        *uuid.UUID `json:"subject_id,omitempty"`
	SubjectName      string     `json:"subject_name,omitempty"`
	GradeID          *uuid.UUID `json:"grade_id,omitempty"`
	GradeName        string     `json:"grade_name,omitempty"`
	FileName         string     `json:"file_name"`
	Description      string     `json:"description,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Chat is one AI conversation owned by the current user.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SenderType distinguishes user messages from assistant replies.
type SenderType string

const (
	SenderUser SenderType = "user"
	SenderAI   SenderType = "ai"
)

// Message is a single chat message.
type Message struct {
	ID          uuid.UUID    `json:"id"`
	ChatID      uuid.UUID    `json:"chat_id"`
	SenderType  SenderType   `json:"sender_type"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"created_at"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is an uploaded file linked to a chat message.
type Attachment struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	FileType string    `json:"file_type"`
}

// RegistrationRequest is a pending account-creation submission awaiting admin
// approval.
type RegistrationRequest struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	RoleRequested Role      `json:"role_requested"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalUsers      int `json:"total_users"`
	Students        int `json:"students"`
	Teachers        int `json:"teachers"`
	PendingRequests int `json:"pending_requests"`
	TotalSources    int `json:"total_sources"`
	TotalChats      int `json:"total_chats"`
}

// Flashcard is one generated study card. Field names follow the backend's
// Slovak payload: otazka = question, odpoved = answer.
type Flashcard struct {
	Question string `json:"otazka"`
	Answer   string `json:"odpoved"`
}

// QuizQuestion is one generated multiple-choice question. Options carry a
// leading letter ("A) ..."), and Correct holds the letter of the right option.
type QuizQuestion struct {
	Question string   `json:"otazka"`
	Options  []string `json:"moznosti"`
	Correct  string   `json:"spravna"`
}

// OptionLetter returns the leading letter of an option string ("A) Text" -> "A").
func OptionLetter(option string) string {
	if option == "" {
		return ""
	}
	return option[:1]
}

// Validate checks that the correct-answer key matches the leading letter of
// one of the question's own options.
func (q *QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.Question)
	}
	for _, opt := range q.Options {
		if OptionLetter(opt) == q.Correct {
			return nil
		}
	}
	return fmt.Errorf("question %q: correct answer %q matches no option", q.Question, q.Correct)
}

// Topics lists the themes derivable from the active AI sources, plus the
// subject catalog for filtering.
type Topics struct {
	Topics   []string  `json:"topics"`
	Subjects []Subject `json:"subjects"`
}
