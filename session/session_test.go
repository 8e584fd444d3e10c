package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func testUserJSON(id uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"id":          id.String(),
		"email":       "admin@pocketbuddy.sk",
		"first_name":  "Admin",
		"last_name":   "PocketBuddy",
		"role":        "admin",
		"is_approved": true,
		"is_active":   true,
	}
}

func TestRestore_NoCredential(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, NewMemoryStore(""))

	require.Equal(t, StatusUnresolved, store.Status())

	status := store.Restore(context.Background())

	assert.Equal(t, StatusAnonymous, status)
	assert.Nil(t, store.Identity())
	assert.Zero(t, requests, "no credential means no network")
}

func TestRestore_ValidCredential(t *testing.T) {
	userID := uuid.New()
	token := signedToken(t, time.Now().Add(time.Hour))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testUserJSON(userID))
	}))
	defer server.Close()

	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, NewMemoryStore(token))

	status := store.Restore(context.Background())

	assert.Equal(t, StatusAuthenticated, status)
	require.NotNil(t, store.Identity())
	assert.Equal(t, userID, store.Identity().ID)
	assert.Equal(t, pocketbuddy.RoleAdmin, store.Identity().Role)
}

func TestRestore_RejectedCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Neplatný token"}`))
	}))
	defer server.Close()

	creds := NewMemoryStore(signedToken(t, time.Now().Add(time.Hour)))
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)

	status := store.Restore(context.Background())

	assert.Equal(t, StatusAnonymous, status)
	assert.Empty(t, client.Token(), "rejected token must not stay installed")

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected credential is erased")
}

func TestRestore_TransientFailureKeepsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	token := signedToken(t, time.Now().Add(time.Hour))
	creds := NewMemoryStore(token)
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)

	status := store.Restore(context.Background())

	assert.Equal(t, StatusAnonymous, status, "restore fails closed")

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, token, stored, "transient failure keeps the credential for next start")
}

func TestRestore_ExpiredTokenSkipsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	creds := NewMemoryStore(signedToken(t, time.Now().Add(-time.Hour)))
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)

	status := store.Restore(context.Background())

	assert.Equal(t, StatusAnonymous, status)
	assert.Zero(t, requests, "expired token needs no round trip")

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRestore_SettlesOnce(t *testing.T) {
	requests := 0
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testUserJSON(userID))
	}))
	defer server.Close()

	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, NewMemoryStore(signedToken(t, time.Now().Add(time.Hour))))

	first := store.Restore(context.Background())
	second := store.Restore(context.Background())

	assert.Equal(t, StatusAuthenticated, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, requests, "restore validates at most once per process")
}

func TestRestore_HungBackendTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, NewMemoryStore(signedToken(t, time.Now().Add(time.Hour))),
		WithRestoreTimeout(50*time.Millisecond))

	start := time.Now()
	status := store.Restore(context.Background())

	assert.Equal(t, StatusAnonymous, status, "a hung backend must not leave the session unresolved")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLogin_Success(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "fresh-token",
			"user":  testUserJSON(userID),
		})
	}))
	defer server.Close()

	creds := NewMemoryStore("")
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)

	user, err := store.Login(context.Background(), "admin@pocketbuddy.sk", "admin123")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	assert.Equal(t, StatusAuthenticated, store.Status())
	assert.Equal(t, "fresh-token", client.Token())

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored, "login persists the credential")
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Nesprávny email alebo heslo"}`))
	}))
	defer server.Close()

	creds := NewMemoryStore("")
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)
	store.Restore(context.Background())

	_, err := store.Login(context.Background(), "admin@pocketbuddy.sk", "wrong")
	require.Error(t, err)

	apiErr, ok := pocketbuddy.IsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())

	assert.Equal(t, StatusAnonymous, store.Status())
	assert.Nil(t, store.Identity())
	assert.Empty(t, client.Token(), "failed login installs nothing")
}

func TestLogout_Idempotent(t *testing.T) {
	client := pocketbuddy.NewClient()
	creds := NewMemoryStore("stale-token")
	store := New(client, creds)

	require.NoError(t, store.Logout())
	assert.Equal(t, StatusAnonymous, store.Status())

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Logging out again changes nothing and reports no error.
	require.NoError(t, store.Logout())
	assert.Equal(t, StatusAnonymous, store.Status())
}

func TestMidFlightRejectionInvalidatesSession(t *testing.T) {
	userID := uuid.New()
	rejected := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rejected {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Neplatný token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testUserJSON(userID))
	}))
	defer server.Close()

	creds := NewMemoryStore(signedToken(t, time.Now().Add(time.Hour)))
	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, creds)

	require.Equal(t, StatusAuthenticated, store.Restore(context.Background()))

	// The backend starts rejecting the token; any call drops the session.
	rejected = true
	_, err := client.Auth.Me(context.Background())
	require.Error(t, err)

	assert.Equal(t, StatusAnonymous, store.Status())
	assert.Nil(t, store.Identity())
	assert.Empty(t, client.Token())

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRegister_DoesNotAuthenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Registrácia čaká na schválenie"}`))
	}))
	defer server.Close()

	client := pocketbuddy.NewClient(pocketbuddy.WithBaseURL(server.URL))
	store := New(client, NewMemoryStore(""))
	store.Restore(context.Background())

	gradeID := uuid.New()
	err := store.Register(context.Background(), pocketbuddy.RegisterRequest{
		Email:     "ziak@skola.sk",
		Password:  "heslo123",
		FirstName: "Ján",
		LastName:  "Novák",
		Role:      pocketbuddy.RoleStudent,
		GradeID:   &gradeID,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAnonymous, store.Status(), "registration never grants a session")
	assert.Empty(t, client.Token())
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Minute)), now))

	// Undecodable tokens go to the backend for the final say.
	assert.False(t, tokenExpired("not-a-jwt", now))
	assert.False(t, tokenExpired("", now))
}
