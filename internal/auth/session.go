package auth

import (
	"errors"
	"time"

	"github.com/standkas/standkas/internal/rbac"
)

// ErrBadCredential indicates a PIN mismatch during login.
var ErrBadCredential = errors.New("auth: invalid credentials")

// IdleState is the result of an idle check.
type IdleState int

const (
	// IdleActive means the session (if any) is still live.
	IdleActive IdleState = iota
	// IdleExpired means the session passed the idle timeout and must be
	// torn down by the caller.
	IdleExpired
)

// Session is the transient record of the authenticated operator. It is never
// persisted; a process restart logs everyone out.
type Session struct {
	AccountID    string
	Role         rbac.Role
	LastActivity time.Time
}

// SessionManager tracks at most one privileged session. Idle checking is
// cooperative: the host polls CheckIdle on a fixed cadence while a session
// is open.
type SessionManager struct {
	idleTimeout time.Duration
	current     *Session
}

// NewSessionManager builds a manager with the given idle timeout.
func NewSessionManager(idleTimeout time.Duration) *SessionManager {
	return &SessionManager{idleTimeout: idleTimeout}
}

// Start opens a session for the given account, replacing any existing one.
func (m *SessionManager) Start(accountID string, role rbac.Role, now time.Time) *Session {
	m.current = &Session{AccountID: accountID, Role: role, LastActivity: now}
	return m.current
}

// Current returns the open session, if any.
func (m *SessionManager) Current() (*Session, bool) {
	if m.current == nil {
		return nil, false
	}
	return m.current, true
}

// TouchActivity refreshes the activity timestamp. Called on every authorized
// administrative operation.
func (m *SessionManager) TouchActivity(now time.Time) {
	if m.current != nil {
		m.current.LastActivity = now
	}
}

// CheckIdle reports whether the session exceeded the idle timeout. The
// session itself is left in place; teardown is the caller's job so the
// auto-logout can be recorded first.
func (m *SessionManager) CheckIdle(now time.Time) IdleState {
	if m.current == nil {
		return IdleActive
	}
	if now.Sub(m.current.LastActivity) > m.idleTimeout {
		return IdleExpired
	}
	return IdleActive
}

// Logout unconditionally clears the session.
func (m *SessionManager) Logout() {
	m.current = nil
}
