// Package session holds the client-side record of who is logged in.
//
// A Store is the single source of truth for the current identity. It is
// mutated only through Restore, Login, Register and Logout; every other layer
// reads it. A 401 from any request drops the store to the anonymous state via
// the client's auth-failure hook.
package session

import (
	"context"
	"sync"
	"time"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

// Status is the session resolution state.
type Status int

const (
	// StatusUnresolved means restore has not settled yet. The UI shows a
	// neutral placeholder and makes no redirect decision.
	StatusUnresolved Status = iota
	// StatusAuthenticated means a validated identity is present.
	StatusAuthenticated
	// StatusAnonymous means no credential, or the credential was rejected.
	StatusAnonymous
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// DefaultRestoreTimeout bounds credential validation during Restore so the
// session never stays unresolved on a hung network.
const DefaultRestoreTimeout = 10 * time.Second

// Store is the process-wide session state. One Store exists per running
// client, created at startup and passed down explicitly.
type Store struct {
	client *pocketbuddy.Client
	creds  CredentialStore

	restoreTimeout time.Duration

	mu       sync.Mutex
	status   Status
	identity *pocketbuddy.User
	restored bool
}

// Option configures a Store.
type Option func(*Store)

// WithRestoreTimeout bounds the Restore network validation.
func WithRestoreTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.restoreTimeout = d
	}
}

// New creates a session store bound to a client and a credential store. The
// store registers itself as the client's auth-failure hook, so a rejected
// credential anywhere invalidates the session.
func New(client *pocketbuddy.Client, creds CredentialStore, opts ...Option) *Store {
	s := &Store{
		client:         client,
		creds:          creds,
		restoreTimeout: DefaultRestoreTimeout,
		status:         StatusUnresolved,
	}
	for _, opt := range opts {
		opt(s)
	}
	client.SetAuthFailureHook(s.invalidate)
	return s
}

// Status returns the current resolution state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns the authenticated user, or nil. Non-nil exactly when
// Status is StatusAuthenticated.
func (s *Store) Identity() *pocketbuddy.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	u := *s.identity
	return &u
}

// Restore recovers a previously stored credential and validates it against
// the backend. It settles exactly once per process: later calls return the
// already-settled status without touching the network.
//
// Any failure (missing credential, rejected token, timeout, unreachable
// backend) resolves to StatusAnonymous. Restore never leaves the session
// unresolved.
func (s *Store) Restore(ctx context.Context) Status {
	s.mu.Lock()
	if s.restored {
		defer s.mu.Unlock()
		return s.status
	}
	s.restored = true
	s.mu.Unlock()

	token, err := s.creds.Load()
	if err != nil || token == "" {
		return s.settle(StatusAnonymous, nil)
	}

	// A token that is already past its expiry cannot validate; skip the
	// round trip and clear it.
	if tokenExpired(token, time.Now()) {
		_ = s.creds.Clear()
		return s.settle(StatusAnonymous, nil)
	}

	s.client.SetToken(token)

	ctx, cancel := context.WithTimeout(ctx, s.restoreTimeout)
	defer cancel()

	user, err := s.client.Auth.Me(ctx)
	if err != nil {
		// Fail closed. The credential file is erased only when the backend
		// rejected the token; a transient failure keeps it for next start.
		if apiErr, ok := pocketbuddy.IsAPIError(err); ok && !apiErr.IsTransient() {
			_ = s.creds.Clear()
		}
		s.client.SetToken("")
		return s.settle(StatusAnonymous, nil)
	}

	return s.settle(StatusAuthenticated, user)
}

// Login exchanges credentials for a session. On success the token is stored
// durably and the identity installed; on any failure the prior state is left
// untouched and the classified error returned. There is no partial
// authentication.
func (s *Store) Login(ctx context.Context, email, password string) (*pocketbuddy.User, error) {
	res, err := s.client.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.creds.Save(res.Token); err != nil {
		return nil, err
	}
	s.client.SetToken(res.Token)

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.identity = res.User
	s.restored = true
	s.mu.Unlock()

	return res.User, nil
}

// Register submits a registration request. Accounts need admin approval
// before the first login, so registering never mutates the session; only the
// submission outcome is reported.
func (s *Store) Register(ctx context.Context, req pocketbuddy.RegisterRequest) error {
	return s.client.Auth.Register(ctx, req)
}

// Logout erases the stored credential and resets to anonymous. Calling it
// while already anonymous is a no-op.
func (s *Store) Logout() error {
	err := s.creds.Clear()
	s.client.SetToken("")

	s.mu.Lock()
	s.status = StatusAnonymous
	s.identity = nil
	s.restored = true
	s.mu.Unlock()

	return err
}

// invalidate handles a credential rejection reported by the client.
func (s *Store) invalidate() {
	_ = s.creds.Clear()
	s.client.SetToken("")

	s.mu.Lock()
	s.status = StatusAnonymous
	s.identity = nil
	s.mu.Unlock()
}

func (s *Store) settle(status Status, user *pocketbuddy.User) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A 401 hook may have fired while Restore was validating; never overwrite
	// an invalidated session with a stale success.
	if status == StatusAuthenticated && s.status == StatusAnonymous {
		return s.status
	}
	s.status = status
	s.identity = user
	return s.status
}
