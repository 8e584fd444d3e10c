// Package pocketbuddy provides the Go client for the PocketBuddy school
// management and AI tutoring API.
//
// PocketBuddy is a role-gated service (admin, teacher, student) covering user
// and registration management, grade/class/subject administration, AI source
// uploads, an AI chat assistant, and generated flashcards and quizzes. All
// state lives in the backend; this client is a thin typed binding plus the
// session, guard, and list-controller layers built on top of it.
package pocketbuddy

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the default PocketBuddy API endpoint.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// apiPrefix roots every application endpoint.
	apiPrefix = "/api"
)

// Client is the PocketBuddy API client.
//
// Use NewClient to create a client, then authenticate it with SetToken (or let
// a session.Store manage the token for you):
//
//	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL("https://school.example.com"))
//	res, err := client.Auth.Login(ctx, "admin@pocketbuddy.sk", "admin123")
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.RWMutex
	token       string
	onAuthError func()

	// Services
	Auth        *AuthService
	Admin       *AdminService
	Grades      *GradesService
	Classes     *ClassesService
	Subjects    *SubjectsService
	Teacher     *TeacherService
	Sources     *SourcesService
	Chats       *ChatsService
	Attachments *AttachmentsService
	Study       *StudyService
	Seed        *SeedService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets the backend origin. The "/api" prefix is appended by the
// client and must not be part of the configured URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithLogger enables request logging. The client logs one debug line per
// request with method, path, status and duration.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAuthFailureHook registers a callback invoked whenever the backend
// rejects the current credential (401). The session store uses this to drop
// to the anonymous state as soon as a token goes stale mid-flight.
func WithAuthFailureHook(hook func()) Option {
	return func(c *Client) {
		c.onAuthError = hook
	}
}

// NewClient creates a new PocketBuddy API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Initialize services
	c.Auth = &AuthService{client: c}
	c.Admin = &AdminService{client: c}
	c.Grades = &GradesService{client: c}
	c.Classes = &ClassesService{client: c}
	c.Subjects = &SubjectsService{client: c}
	c.Teacher = &TeacherService{client: c}
	c.Sources = &SourcesService{client: c}
	c.Chats = &ChatsService{client: c}
	c.Attachments = &AttachmentsService{client: c}
	c.Study = &StudyService{client: c}
	c.Seed = &SeedService{client: c}

	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken installs the bearer credential used on authenticated requests.
// An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer credential.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetAuthFailureHook replaces the 401 callback. See WithAuthFailureHook.
func (c *Client) SetAuthFailureHook(hook func()) {
	c.mu.Lock()
	c.onAuthError = hook
	c.mu.Unlock()
}

func (c *Client) authFailed() {
	c.mu.RLock()
	hook := c.onAuthError
	c.mu.RUnlock()
	if hook != nil {
		hook()
	}
}
