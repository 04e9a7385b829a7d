package domain

import "testing"

func TestAllowed_PermissionTable(t *testing.T) {
	cases := []struct {
		role Role
		op   Operation
		want bool
	}{
		{RoleAdmin, OpView, true},
		{RoleAdmin, OpCreate, true},
		{RoleAdmin, OpEdit, true},
		{RoleAdmin, OpDelete, true},

		// Viewers may create but never edit or delete.
		{RoleViewer, OpView, true},
		{RoleViewer, OpCreate, true},
		{RoleViewer, OpEdit, false},
		{RoleViewer, OpDelete, false},

		{RoleDeveloper, OpView, true},
		{RoleDeveloper, OpCreate, false},
		{RoleDeveloper, OpEdit, false},
		{RoleDeveloper, OpDelete, false},

		{RoleDevOps, OpView, true},
		{RoleDevOps, OpCreate, false},
		{RoleDevOps, OpEdit, false},
		{RoleDevOps, OpDelete, false},

		{RoleTester, OpView, true},
		{RoleTester, OpCreate, false},
		{RoleTester, OpEdit, false},
		{RoleTester, OpDelete, false},

		// Unknown roles get nothing.
		{Role("guest"), OpView, false},
		{Role(""), OpCreate, false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.role, tc.op); got != tc.want {
			t.Fatalf("Allowed(%q, %q) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestCanSeeForm(t *testing.T) {
	visible := map[Role]bool{
		RoleAdmin:     true,
		RoleViewer:    true,
		RoleDeveloper: false,
		RoleDevOps:    false,
		RoleTester:    false,
	}
	for role, want := range visible {
		if got := CanSeeForm(role); got != want {
			t.Fatalf("CanSeeForm(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles {
		if !r.Valid() {
			t.Fatalf("role %q should be valid", r)
		}
	}
	if Role("root").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}

func TestRole_DescriptionCoversAllRoles(t *testing.T) {
	for _, r := range AllRoles {
		if r.Description() == "" {
			t.Fatalf("role %q has no description", r)
		}
	}
	if Role("root").Description() != "" {
		t.Fatalf("unknown role should have an empty description")
	}
}
