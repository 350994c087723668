package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedTiers(t *testing.T) {
	cases := []struct {
		action  Action
		user    bool
		coadmin bool
		admin   bool
	}{
		{ActionViewCatalog, true, true, true},
		{ActionPurchase, true, true, true},
		{ActionManageOwnAccount, true, true, true},
		{ActionCreateAccount, false, true, true},
		{ActionChangeType, false, true, true},
		{ActionExportLog, false, true, true},
		{ActionImportData, false, true, true},
		{ActionDeleteAccount, false, false, true},
		{ActionRenameAccount, false, false, true},
		{ActionChangeRole, false, false, true},
		{ActionChangePIN, false, false, true},
		{ActionAdjustBalance, false, false, true},
		{ActionManageProducts, false, false, true},
		{ActionClearLog, false, false, true},
		{ActionExportData, false, false, true},
		{ActionResetData, false, false, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.user, Allowed(RoleUser, tc.action), "user %s", tc.action)
		require.Equal(t, tc.coadmin, Allowed(RoleCoAdmin, tc.action), "coadmin %s", tc.action)
		require.Equal(t, tc.admin, Allowed(RoleAdmin, tc.action), "admin %s", tc.action)
	}
}

func TestAllowedUnknown(t *testing.T) {
	require.False(t, Allowed(RoleAdmin, Action("formatDisk")))
	require.False(t, Allowed(Role("root"), ActionPurchase))
}

func TestCanDelete(t *testing.T) {
	require.True(t, CanDelete(RoleUser, 1))
	require.True(t, CanDelete(RoleCoAdmin, 1))
	require.False(t, CanDelete(RoleAdmin, 1))
	require.True(t, CanDelete(RoleAdmin, 2))
}

func TestCanChangeRole(t *testing.T) {
	// Demoting the sole admin is refused, whoever asks.
	require.False(t, CanChangeRole(RoleAdmin, RoleUser, 1))
	require.False(t, CanChangeRole(RoleAdmin, RoleCoAdmin, 1))
	require.True(t, CanChangeRole(RoleAdmin, RoleAdmin, 1))
	require.True(t, CanChangeRole(RoleAdmin, RoleUser, 2))
	require.True(t, CanChangeRole(RoleUser, RoleAdmin, 1))
	require.False(t, CanChangeRole(RoleUser, Role("root"), 3))
}
