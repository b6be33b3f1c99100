package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// Status is the authentication lifecycle state.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusAuthError      Status = "auth_error"
)

// genericAuthErr is shown when the backend is unreachable and there is no
// server message to surface.
const genericAuthErr = "Unable to reach the server. Please try again."

// AuthClient is the slice of the backend the session store drives. Satisfied
// by *backend.Client.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (backend.AuthSession, error)
	CheckSession(ctx context.Context) (domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (backend.AuthSession, error)
	UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// Snapshot is an atomic read of the session state. User is non-nil exactly
// when Status is StatusAuthenticated.
type Snapshot struct {
	Status      Status
	User        *domain.User
	AccessToken string
	LastError   string
}

// Store owns the single source of truth for "who is the current user" and
// serializes auth state transitions. Every operation moves the store to
// StatusAuthenticating at start and lands on exactly one terminal state when
// the backend call settles.
//
// Operations are not queued. Each start takes a sequence token under the
// lock; a completion whose token is no longer current is discarded, so a
// slow first response can never overwrite the state of a later operation.
type Store struct {
	client    AuthClient
	log       *slog.Logger
	autoLogin bool

	mu          sync.Mutex
	seq         uint64
	status      Status
	user        *domain.User
	accessToken string
	lastError   string
	logoutHooks []func()
}

// NewStore creates a session store in the anonymous state. autoLoginOnRegister
// controls whether a successful registration authenticates the new identity
// immediately or leaves the visitor anonymous until an explicit login.
func NewStore(client AuthClient, log *slog.Logger, autoLoginOnRegister bool) *Store {
	return &Store{
		client:    client,
		log:       log,
		autoLogin: autoLoginOnRegister,
		status:    StatusAnonymous,
	}
}

// OnLogout registers fn to run after the local session is torn down, both on
// explicit logout and on successful account deletion. Used by the shell to
// purge identity-scoped state such as chat history.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutHooks = append(s.logoutHooks, fn)
}

// Snapshot returns the current state atomically.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:      s.status,
		AccessToken: s.accessToken,
		LastError:   s.lastError,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// CurrentUser returns the authenticated profile, or false when anonymous.
func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Login authenticates against the backend. On rejection the store lands on
// StatusAuthError with the server's message surfaced verbatim; on transport
// failure the message is generic.
func (s *Store) Login(ctx context.Context, username, password string) (domain.User, error) {
	token := s.begin()

	auth, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.fail(token, err)
		return domain.User{}, err
	}

	s.succeed(token, auth.User, auth.AccessToken)
	return auth.User, nil
}

// CheckSession silently restores authentication from the server-side session
// cookie at application start. A missing or expired session is not a
// user-facing error: failure lands on StatusAnonymous, never StatusAuthError.
func (s *Store) CheckSession(ctx context.Context) (domain.User, error) {
	token := s.begin()

	user, err := s.client.CheckSession(ctx)
	if err != nil {
		s.log.Debug("session check failed", "err", err)
		s.resetToAnonymous(token)
		return domain.User{}, err
	}

	s.succeed(token, user, "")
	return user, nil
}

// Register creates a new account. The registration form has already been
// validated at the edge; the store trusts its input. Whether the new identity
// is authenticated immediately depends on the store's auto-login setting.
func (s *Store) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	token := s.begin()

	auth, err := s.client.Register(ctx, reg)
	if err != nil {
		s.fail(token, err)
		return domain.User{}, err
	}

	if s.autoLogin {
		s.succeed(token, auth.User, auth.AccessToken)
	} else {
		s.resetToAnonymous(token)
	}
	return auth.User, nil
}

// Logout tears down the session. The backend call is advisory: even when it
// fails, the local session is cleared and the store lands on StatusAnonymous,
// so the UI never leaves the user stuck authenticated after clicking logout.
// Logout hooks fire after teardown.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn("backend logout failed, clearing local session anyway", "err", err)
	}
	s.teardown()
}

// UpdatePassword changes the password, reusing the same status machinery:
// the store passes through StatusAuthenticating and returns to its prior
// authenticated identity on success.
func (s *Store) UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	token := s.begin()

	if err := s.client.UpdatePassword(ctx, username, currentPassword, newPassword); err != nil {
		s.fail(token, err)
		return err
	}

	s.settle(token)
	return nil
}

// DeleteAccount removes the account. Success always ends anonymous and fires
// the logout hooks, since the identity the local state was scoped to no
// longer exists.
func (s *Store) DeleteAccount(ctx context.Context, username, password string) error {
	token := s.begin()

	if err := s.client.DeleteAccount(ctx, username, password); err != nil {
		s.fail(token, err)
		return err
	}

	s.teardown()
	return nil
}

// begin moves the store to StatusAuthenticating, clears the previous error
// and returns the sequence token identifying this operation.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.status = StatusAuthenticating
	s.lastError = ""
	return s.seq
}

// current reports whether the completion holding token is still the latest
// operation. Callers hold s.mu.
func (s *Store) current(token uint64) bool {
	if token != s.seq {
		s.log.Debug("discarding stale auth completion", "token", token, "seq", s.seq)
		return false
	}
	return true
}

func (s *Store) succeed(token uint64, user domain.User, accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(token) {
		return
	}
	s.status = StatusAuthenticated
	s.user = &user
	s.accessToken = accessToken
}

// settle finishes an operation that keeps the current identity (password
// update): back to authenticated when a user is present, anonymous otherwise.
func (s *Store) settle(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(token) {
		return
	}
	if s.user != nil {
		s.status = StatusAuthenticated
	} else {
		s.status = StatusAnonymous
	}
}

func (s *Store) fail(token uint64, err error) {
	msg := genericAuthErr
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(token) {
		return
	}
	s.status = StatusAuthError
	s.lastError = msg
	s.user = nil
	s.accessToken = ""
}

func (s *Store) resetToAnonymous(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(token) {
		return
	}
	s.status = StatusAnonymous
	s.user = nil
	s.accessToken = ""
}

// teardown unconditionally clears the session and fires logout hooks. It
// bumps the sequence so any still in-flight operation cannot resurrect the
// identity afterwards.
func (s *Store) teardown() {
	s.mu.Lock()
	s.seq++
	s.status = StatusAnonymous
	s.user = nil
	s.accessToken = ""
	s.lastError = ""
	hooks := make([]func(), len(s.logoutHooks))
	copy(hooks, s.logoutHooks)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
