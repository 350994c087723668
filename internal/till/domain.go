package till

import (
	"errors"
	"fmt"
	"time"
)

// Version tags bulk JSON exports.
const Version = "standkas-v1"

// Config carries the tunable knobs of the till core.
type Config struct {
	MaxAccounts  int
	IdleTimeout  time.Duration
	LockMaxFails int
	LockCooldown time.Duration
}

// Defaults mirror the kiosk's historical constants.
func (c Config) withDefaults() Config {
	if c.MaxAccounts <= 0 {
		c.MaxAccounts = 50
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 5 * time.Minute
	}
	if c.LockMaxFails <= 0 {
		c.LockMaxFails = 5
	}
	if c.LockCooldown <= 0 {
		c.LockCooldown = 2 * time.Minute
	}
	return c
}

var (
	// ErrNoSession indicates a gated operation without an open session.
	ErrNoSession = errors.New("till: no active session")
	// ErrPermissionDenied indicates the session role lacks the capability.
	// Denied attempts are not audited; only failed privileged logins are.
	ErrPermissionDenied = errors.New("till: permission denied")
	// ErrNotStaff indicates a privileged login on a non-staff account.
	ErrNotStaff = errors.New("till: account has no staff role")
	// ErrMalformedShape rejects an import payload missing the accounts,
	// products or logs arrays. Existing state is left untouched.
	ErrMalformedShape = errors.New("till: malformed import payload")
)

// LockedOutError is returned while the privileged-login cooldown is active.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("till: admin login locked, retry in %s", e.Remaining.Round(time.Second))
}
