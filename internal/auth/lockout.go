package auth

import "time"

// LockState is the persisted brute-force counter. LockedUntil is epoch
// milliseconds, 0 while the guard is open, so a reload cannot bypass an
// active cooldown.
type LockState struct {
	FailCount   int   `json:"failCount"`
	LockedUntil int64 `json:"lockedUntil"`
}

// Guard throttles privileged login attempts. Ordinary user PIN entry is not
// guarded. Expiry is lazy: the state flips back to open the first time
// CheckAllowed runs after the cooldown, no timer involved.
type Guard struct {
	maxFails int
	cooldown time.Duration
	state    LockState
}

// NewGuard builds a Guard resuming from a previously persisted state.
func NewGuard(maxFails int, cooldown time.Duration, state LockState) *Guard {
	return &Guard{maxFails: maxFails, cooldown: cooldown, state: state}
}

// CheckAllowed reports whether a privileged login may proceed. While locked
// it returns false and the remaining cooldown.
func (g *Guard) CheckAllowed(now time.Time) (bool, time.Duration) {
	until := time.UnixMilli(g.state.LockedUntil)
	if g.state.LockedUntil > 0 && now.Before(until) {
		return false, until.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a failed privileged login. Reaching the maximum
// transitions to locked and resets the counter. Reports whether this
// failure triggered the lock.
func (g *Guard) RecordFailure(now time.Time) bool {
	g.state.FailCount++
	if g.state.FailCount >= g.maxFails {
		g.state = LockState{FailCount: 0, LockedUntil: now.Add(g.cooldown).UnixMilli()}
		return true
	}
	g.state.LockedUntil = 0
	return false
}

// RecordSuccess clears the counter and any lock.
func (g *Guard) RecordSuccess() {
	g.state = LockState{}
}

// State exposes the persistable lock state.
func (g *Guard) State() LockState {
	return g.state
}
