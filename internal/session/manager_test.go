// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	apperrors "hopelink/cli/internal/errors"
)

// memStore is an in-memory store.Store with fault injection.
type memStore struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
	clears   int
}

func (s *memStore) Write(data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *memStore) Read() ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.data, nil
}

func (s *memStore) Clear() error {
	s.clears++
	s.data = nil
	return nil
}

// stubAuth is a canned Authenticator.
type stubAuth struct {
	user  User
	token string
	err   error
}

func (a *stubAuth) AdminLogin(ctx context.Context, email, password string) (User, string, error) {
	return a.user, a.token, a.err
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func storedRecord(t *testing.T, rec Record) []byte {
	t.Helper()
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	return data
}

func TestManagerBootstrap(t *testing.T) {
	adminRec := NewRecord(User{ID: "u1", Email: "a@hopelink.org", Role: RoleAdmin}, "tok", testNow)

	tests := []struct {
		name       string
		stored     []byte
		readErr    error
		wantAuthed bool
		wantClears int
	}{
		{
			name:       "valid admin record restores the session",
			stored:     storedRecord(t, adminRec),
			wantAuthed: true,
		},
		{
			name:       "empty slot",
			wantAuthed: false,
		},
		{
			name:       "expired record is deleted",
			stored:     storedRecord(t, NewRecord(User{Role: RoleAdmin}, "tok", testNow.Add(-TTL-time.Minute))),
			wantAuthed: false,
			wantClears: 1,
		},
		{
			name:       "non-admin record is deleted",
			stored:     storedRecord(t, NewRecord(User{Role: RoleDonor}, "tok", testNow)),
			wantAuthed: false,
			wantClears: 1,
		},
		{
			name:       "record without token is deleted",
			stored:     storedRecord(t, NewRecord(User{Role: RoleAdmin}, "", testNow)),
			wantAuthed: false,
			wantClears: 1,
		},
		{
			name:       "malformed stored bytes are deleted",
			stored:     []byte("{not json"),
			wantAuthed: false,
			wantClears: 1,
		},
		{
			name:       "storage read failure reads as signed out",
			readErr:    errors.New("keychain locked"),
			wantAuthed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &memStore{data: tt.stored, readErr: tt.readErr}
			m := NewManager(st, fixedClock(testNow))

			if !m.Loading() {
				t.Error("Loading() = false before Bootstrap")
			}
			m.Bootstrap()
			if m.Loading() {
				t.Error("Loading() = true after Bootstrap")
			}

			if got := m.IsAuthenticated(); got != tt.wantAuthed {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.wantAuthed)
			}
			if st.clears != tt.wantClears {
				t.Errorf("store cleared %d times, want %d", st.clears, tt.wantClears)
			}
			if tt.wantAuthed {
				u, ok := m.CurrentUser()
				if !ok {
					t.Fatal("CurrentUser() reported no user")
				}
				if u.Email != "a@hopelink.org" {
					t.Errorf("CurrentUser().Email = %q, want %q", u.Email, "a@hopelink.org")
				}
			}
		})
	}
}

func TestManagerBootstrapRunsOnce(t *testing.T) {
	st := &memStore{data: storedRecord(t, NewRecord(User{Role: RoleAdmin}, "tok", testNow))}
	m := NewManager(st, fixedClock(testNow))

	m.Bootstrap()
	st.data = nil
	m.Bootstrap() // must not re-examine the store

	if _, ok := m.CurrentUser(); !ok {
		t.Error("second Bootstrap() discarded the resolved state")
	}
}

func TestManagerLoginSuccess(t *testing.T) {
	st := &memStore{}
	m := NewManager(st, fixedClock(testNow))
	m.Bootstrap()
	m.SetAuthenticator(&stubAuth{
		user:  User{ID: "u1", Email: "a@hopelink.org", Role: RoleAdmin},
		token: "fresh-token",
	})

	res := m.Login(context.Background(), "a@hopelink.org", "pw")
	if !res.Success {
		t.Fatalf("Login() failed: %q", res.Message)
	}
	if !m.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after successful login")
	}
	if got := m.Token(); got != "fresh-token" {
		t.Errorf("Token() = %q, want %q", got, "fresh-token")
	}

	var rec Record
	if err := json.Unmarshal(st.data, &rec); err != nil {
		t.Fatalf("stored record is not valid JSON: %v", err)
	}
	if want := testNow.Add(TTL).UnixMilli(); rec.ExpiresAt != want {
		t.Errorf("stored ExpiresAt = %d, want %d", rec.ExpiresAt, want)
	}
	if rec.Token != "fresh-token" {
		t.Errorf("stored Token = %q, want %q", rec.Token, "fresh-token")
	}
}

func TestManagerLoginFailures(t *testing.T) {
	tests := []struct {
		name        string
		auth        *stubAuth
		writeErr    error
		wantMessage string
	}{
		{
			name:        "credential failure uses the server message",
			auth:        &stubAuth{err: apperrors.New(apperrors.Credential, "Account suspended")},
			wantMessage: "Account suspended",
		},
		{
			name:        "credential failure without server message",
			auth:        &stubAuth{err: apperrors.New(apperrors.Credential, "")},
			wantMessage: "Invalid email or password",
		},
		{
			name:        "network failure",
			auth:        &stubAuth{err: apperrors.Wrap(apperrors.Network, "request failed", errors.New("dial tcp: refused"))},
			wantMessage: "Unable to reach the server. Check your connection and try again.",
		},
		{
			name:        "non-admin account",
			auth:        &stubAuth{user: User{Role: RoleMerchant}, token: "tok"},
			wantMessage: "This account does not have admin access.",
		},
		{
			name:        "store write failure",
			auth:        &stubAuth{user: User{Role: RoleAdmin}, token: "tok"},
			writeErr:    errors.New("disk full"),
			wantMessage: "Could not save your session. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &memStore{writeErr: tt.writeErr}
			m := NewManager(st, fixedClock(testNow))
			m.Bootstrap()
			m.SetAuthenticator(tt.auth)

			res := m.Login(context.Background(), "a@hopelink.org", "pw")
			if res.Success {
				t.Fatal("Login() succeeded, want failure")
			}
			if res.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMessage)
			}
			if m.IsAuthenticated() {
				t.Error("IsAuthenticated() = true after failed login")
			}
			if len(st.data) != 0 {
				t.Errorf("failed login left stored data: %q", st.data)
			}
		})
	}
}

func TestManagerFailedLoginKeepsExistingSession(t *testing.T) {
	existing := NewRecord(User{ID: "u1", Email: "a@hopelink.org", Role: RoleAdmin}, "old-token", testNow)
	st := &memStore{data: storedRecord(t, existing)}
	m := NewManager(st, fixedClock(testNow))
	m.Bootstrap()
	m.SetAuthenticator(&stubAuth{err: apperrors.New(apperrors.Credential, "")})

	res := m.Login(context.Background(), "a@hopelink.org", "wrong")
	if res.Success {
		t.Fatal("Login() succeeded, want failure")
	}
	if got := m.Token(); got != "old-token" {
		t.Errorf("Token() = %q, want the pre-existing %q", got, "old-token")
	}
	if !m.IsAuthenticated() {
		t.Error("existing session was invalidated by an unrelated failed login")
	}
}

func TestManagerTokenReadThrough(t *testing.T) {
	rec := NewRecord(User{Role: RoleAdmin}, "tok", testNow)
	st := &memStore{data: storedRecord(t, rec)}
	m := NewManager(st, fixedClock(testNow))

	// Token is correct even before Bootstrap has run.
	if got := m.Token(); got != "tok" {
		t.Errorf("Token() = %q, want %q", got, "tok")
	}

	// Tamper with the slot behind the manager's back.
	st.data = storedRecord(t, NewRecord(User{Role: RoleDonor}, "tok", testNow))
	if got := m.Token(); got != "" {
		t.Errorf("Token() = %q for a non-admin record, want empty", got)
	}
	if st.clears != 1 {
		t.Errorf("invalid record cleared %d times, want 1", st.clears)
	}
}

func TestManagerExpiryObservedOnRead(t *testing.T) {
	clock := testNow
	st := &memStore{data: storedRecord(t, NewRecord(User{Role: RoleAdmin}, "tok", testNow))}
	m := NewManager(st, WithClock(func() time.Time { return clock }))
	m.Bootstrap()

	if !m.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false with a fresh record")
	}

	clock = testNow.Add(TTL + time.Second)
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() = true past expiry")
	}
	if st.clears != 1 {
		t.Errorf("expired record cleared %d times, want 1", st.clears)
	}
	if _, ok := m.CurrentUser(); ok {
		t.Error("CurrentUser() still set after expiry was observed")
	}
}

func TestManagerLogout(t *testing.T) {
	st := &memStore{data: storedRecord(t, NewRecord(User{Role: RoleAdmin}, "tok", testNow))}
	m := NewManager(st, fixedClock(testNow))
	m.Bootstrap()

	m.Logout()
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after Logout")
	}
	if len(st.data) != 0 {
		t.Error("Logout left stored data behind")
	}

	// Logging out while signed out is a no-op, not an error.
	m.Logout()
	m.Invalidate()
}
