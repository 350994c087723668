package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/standkas/standkas/internal/rbac"
)

func TestSessionIdleBoundary(t *testing.T) {
	start := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(5 * time.Minute)
	m.Start("acc-1", rbac.RoleAdmin, start)

	require.Equal(t, IdleActive, m.CheckIdle(start.Add(4*time.Minute+59*time.Second)))
	require.Equal(t, IdleActive, m.CheckIdle(start.Add(5*time.Minute)))
	require.Equal(t, IdleExpired, m.CheckIdle(start.Add(5*time.Minute+time.Second)))
}

func TestSessionTouchRefreshes(t *testing.T) {
	start := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(5 * time.Minute)
	m.Start("acc-1", rbac.RoleCoAdmin, start)

	m.TouchActivity(start.Add(4 * time.Minute))
	require.Equal(t, IdleActive, m.CheckIdle(start.Add(8*time.Minute)))
	require.Equal(t, IdleExpired, m.CheckIdle(start.Add(10*time.Minute)))
}

func TestSessionLifecycle(t *testing.T) {
	start := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(5 * time.Minute)

	_, ok := m.Current()
	require.False(t, ok)
	require.Equal(t, IdleActive, m.CheckIdle(start), "no session, nothing to expire")

	session := m.Start("acc-1", rbac.RoleAdmin, start)
	require.Equal(t, "acc-1", session.AccountID)
	current, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, session, current)

	m.Logout()
	_, ok = m.Current()
	require.False(t, ok)
}
