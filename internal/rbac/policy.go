package rbac

// tier is the minimum role required for an action.
type tier int

const (
	tierUser tier = iota
	tierStaff
	tierAdmin
)

var grants = map[Action]tier{
	ActionViewCatalog:      tierUser,
	ActionPurchase:         tierUser,
	ActionManageOwnAccount: tierUser,

	ActionCreateAccount: tierStaff,
	ActionChangeType:    tierStaff,
	ActionExportLog:     tierStaff,
	ActionImportData:    tierStaff,

	ActionDeleteAccount:  tierAdmin,
	ActionRenameAccount:  tierAdmin,
	ActionChangeRole:     tierAdmin,
	ActionChangePIN:      tierAdmin,
	ActionAdjustBalance:  tierAdmin,
	ActionManageProducts: tierAdmin,
	ActionClearLog:       tierAdmin,
	ActionExportData:     tierAdmin,
	ActionResetData:      tierAdmin,
}

// Allowed is the pure policy decision: may role perform action.
// Unknown actions are denied for every role.
func Allowed(role Role, action Action) bool {
	required, ok := grants[action]
	if !ok || !role.Valid() {
		return false
	}
	switch required {
	case tierUser:
		return true
	case tierStaff:
		return role.Staff()
	default:
		return role == RoleAdmin
	}
}

// CanDelete reports whether an account with the given role may be removed
// from a directory currently holding adminCount admins. Deleting the sole
// admin is never allowed.
func CanDelete(role Role, adminCount int) bool {
	if role != RoleAdmin {
		return true
	}
	return adminCount > 1
}

// CanChangeRole reports whether an account may move from oldRole to newRole
// given the current admin count. Demoting the sole admin is never allowed,
// including a session holder demoting themself.
func CanChangeRole(oldRole, newRole Role, adminCount int) bool {
	if !newRole.Valid() {
		return false
	}
	if oldRole == RoleAdmin && newRole != RoleAdmin {
		return adminCount > 1
	}
	return true
}
