package domain

// Operation is a roster action subject to role-based authorization.
type Operation string

const (
	OpView   Operation = "view"
	OpCreate Operation = "create"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// rolePermissions is the single authoritative permission table. Viewers may
// create accounts but not edit or delete them: the console deliberately lets
// a read-only operator enroll new teammates. Revisit before widening the
// viewer role any further.
var rolePermissions = map[Role]map[Operation]struct{}{
	RoleAdmin: {
		OpView:   {},
		OpCreate: {},
		OpEdit:   {},
		OpDelete: {},
	},
	RoleViewer: {
		OpView:   {},
		OpCreate: {},
	},
	RoleDeveloper: {
		OpView: {},
	},
	RoleDevOps: {
		OpView: {},
	},
	RoleTester: {
		OpView: {},
	},
}

// Allowed reports whether a role may perform an operation. It is a pure
// predicate: callers decide whether a denial is an error (server handlers)
// or a silent no-op (console guards).
func Allowed(role Role, op Operation) bool {
	ops, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// CanSeeForm reports whether the create/edit form is reachable at all for a
// role. It is the only create gate on the console side.
func CanSeeForm(role Role) bool {
	return Allowed(role, OpCreate)
}
