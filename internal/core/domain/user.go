package domain

import "time"

// Role classifies what a team member is allowed to do on the dashboard.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleViewer    Role = "viewer"
	RoleDevOps    Role = "devops"
	RoleTester    Role = "tester"
)

// DefaultRole is applied when a create payload omits the role.
const DefaultRole = RoleDeveloper

// AllRoles lists every valid role, in the order the console presents them.
var AllRoles = []Role{RoleDeveloper, RoleAdmin, RoleViewer, RoleDevOps, RoleTester}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleViewer, RoleDevOps, RoleTester:
		return true
	}
	return false
}

// Description returns the human-readable summary shown next to the role
// selector in the console form.
func (r Role) Description() string {
	switch r {
	case RoleAdmin:
		return "Full access to all features and team management"
	case RoleDeveloper:
		return "Can view pipelines and manage own deployments"
	case RoleViewer:
		return "Read-only access to dashboards and reports"
	case RoleDevOps:
		return "Pipeline configuration and infrastructure management"
	case RoleTester:
		return "Test environment access and quality assurance"
	}
	return ""
}

// User is a team-member account on the roster.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
