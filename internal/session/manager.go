// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	apperrors "hopelink/cli/internal/errors"
	"hopelink/cli/internal/store"
)

// State is the manager's lifecycle position.
type State int

const (
	// Bootstrapping is the only initial state: the stored record has not
	// been examined yet.
	Bootstrapping State = iota
	Unauthenticated
	Authenticated
)

// Authenticator performs the remote admin login call.
// Implemented by the API client; stubbed in tests.
type Authenticator interface {
	// AdminLogin exchanges credentials for a user profile and bearer token.
	// Failures carry an errors.Kind so the manager can pick a message.
	AdminLogin(ctx context.Context, email, password string) (User, string, error)
}

// LoginResult is the typed outcome of a login attempt. Login never lets a
// failure escape as a panic or raw error; callers render Message inline.
type LoginResult struct {
	Success bool
	Message string
}

// User-displayable fallback messages. A server-provided message always wins.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgNetworkFailure     = "Unable to reach the server. Check your connection and try again."
	msgNoAdminAccess      = "This account does not have admin access."
	msgSessionSaveFailed  = "Could not save your session. Please try again."
)

// Manager is the source of truth for "is there a valid admin session".
// One Manager is constructed at process start and passed to whatever needs
// it; there is no package-level singleton.
type Manager struct {
	store store.Store
	auth  Authenticator
	now   func() time.Time

	bootstrapOnce sync.Once

	mu    sync.Mutex
	state State
	user  *User
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager in the Bootstrapping state. The manager and
// the API client reference each other (token source one way, authenticator
// the other), so the authenticator is bound after construction with
// SetAuthenticator.
func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store: st,
		now:   time.Now,
		state: Bootstrapping,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetAuthenticator binds the remote login dependency. Must be called before
// Login; every other operation works without it.
func (m *Manager) SetAuthenticator(auth Authenticator) {
	m.auth = auth
}

// Bootstrap derives the initial state from the store. It resolves exactly
// once, regardless of which branch is taken: a valid admin record yields
// Authenticated, everything else (empty slot, parse failure, expiry, wrong
// role) yields Unauthenticated. Invalid records are deleted, not ignored.
func (m *Manager) Bootstrap() {
	m.bootstrapOnce.Do(func() {
		rec, present := m.read()

		m.mu.Lock()
		defer m.mu.Unlock()
		if present && rec.Valid(m.now()) {
			u := rec.User
			m.state = Authenticated
			m.user = &u
			return
		}
		if present {
			_ = m.store.Clear()
		}
		m.state = Unauthenticated
		m.user = nil
	})
}

// Loading reports whether the manager is still Bootstrapping.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Bootstrapping
}

// IsAuthenticated re-evaluates validity against the store on every call, so
// an expired or tampered record flips the state the first time it is
// observed and is removed from the store at the same moment.
func (m *Manager) IsAuthenticated() bool {
	rec, present := m.read()
	valid := present && rec.Valid(m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	if valid {
		return m.state == Authenticated
	}
	if present {
		_ = m.store.Clear()
	}
	if m.state == Authenticated {
		m.state = Unauthenticated
		m.user = nil
	}
	return false
}

// CurrentUser returns the profile of the authenticated user, if any.
func (m *Manager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Authenticated || m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

// Token reads through to the store and fails soft to "". It stays correct
// before Bootstrap has run. An invalid record observed here is deleted.
func (m *Manager) Token() string {
	rec, present := m.read()
	if !present {
		return ""
	}
	if !rec.Valid(m.now()) {
		_ = m.store.Clear()
		return ""
	}
	return rec.Token
}

// Login calls the admin login endpoint and, on success, persists a fresh
// record expiring TTL from now and transitions to Authenticated. On any
// failure the stored state is left untouched and a displayable message is
// returned; nothing is ever thrown past this boundary.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	u, token, err := m.auth.AdminLogin(ctx, email, password)
	if err != nil {
		return LoginResult{Success: false, Message: loginFailureMessage(err)}
	}
	if u.Role != RoleAdmin {
		// Persisting a non-admin record would only be cleared on the next
		// read, so it is rejected here instead.
		return LoginResult{Success: false, Message: msgNoAdminAccess}
	}
	if token == "" {
		return LoginResult{Success: false, Message: msgInvalidCredentials}
	}

	rec := NewRecord(u, token, m.now())
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return LoginResult{Success: false, Message: msgSessionSaveFailed}
	}
	if err := m.store.Write(data); err != nil {
		return LoginResult{Success: false, Message: msgSessionSaveFailed}
	}

	m.mu.Lock()
	m.state = Authenticated
	m.user = &u
	m.mu.Unlock()
	return LoginResult{Success: true}
}

// Logout clears the store and transitions to Unauthenticated. Idempotent.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.mu.Lock()
	m.state = Unauthenticated
	m.user = nil
	m.mu.Unlock()
}

// Invalidate is the path taken when a downstream call reports the credential
// is no longer honored (401). Identical to Logout today, kept separate so
// the two intents stay distinguishable at call sites.
func (m *Manager) Invalidate() {
	m.Logout()
}

// read loads and parses the stored record. Malformed data is deleted and
// reported as absence; storage failures also read as absence. Never panics.
func (m *Manager) read() (Record, bool) {
	data, err := m.store.Read()
	if err != nil || len(data) == 0 {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = m.store.Clear()
		return Record{}, false
	}
	return rec, true
}

// loginFailureMessage maps a login error to a displayable message,
// preferring the server-provided one for credential failures.
func loginFailureMessage(err error) string {
	var e *apperrors.E
	stderrors.As(err, &e)
	switch apperrors.KindOf(err) {
	case apperrors.Credential:
		if e != nil && e.Message != "" {
			return e.Message
		}
		return msgInvalidCredentials
	case apperrors.Network:
		return msgNetworkFailure
	case apperrors.Cancelled:
		// Cancellation is not a user-visible failure.
		return ""
	default:
		return msgInvalidCredentials
	}
}
