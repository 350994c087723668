package rbac

// Role is the permission tier of an account.
type Role string

const (
	// RoleUser may view the catalog, purchase, and manage its own account.
	RoleUser Role = "user"
	// RoleCoAdmin may additionally create accounts, toggle guest status,
	// and export or import data.
	RoleCoAdmin Role = "coadmin"
	// RoleAdmin holds every capability.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCoAdmin, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether r may open a privileged session.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleCoAdmin
}

// Action is an atomic capability gated by the policy.
type Action string

// Any authenticated account.
const (
	ActionViewCatalog      Action = "viewCatalog"
	ActionPurchase         Action = "purchase"
	ActionManageOwnAccount Action = "manageOwnAccount"
)

// Admin or co-admin.
const (
	ActionCreateAccount Action = "createAccount"
	ActionChangeType    Action = "changeType"
	ActionExportLog     Action = "exportLog"
	ActionImportData    Action = "importData"
)

// Admin only.
const (
	ActionDeleteAccount  Action = "deleteAccount"
	ActionRenameAccount  Action = "renameAccount"
	ActionChangeRole     Action = "changeRole"
	ActionChangePIN      Action = "changePIN"
	ActionAdjustBalance  Action = "adjustBalance"
	ActionManageProducts Action = "manageProducts"
	ActionClearLog       Action = "clearLog"
	ActionExportData     Action = "exportData"
	ActionResetData      Action = "resetData"
)
