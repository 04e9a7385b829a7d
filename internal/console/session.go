// Package console implements the client side of the team-roster dashboard:
// the roster store that mirrors the server's user list, the create/edit form
// state machine, and the HTTP client binding them to the roster API.
package console

import "github.com/pipeboard/roster-console/internal/core/domain"

// Identity is the resolved operator identity supplied by the auth
// collaborator. The role is the sole authorization input on the client.
type Identity struct {
	ID   string
	Name string
	Role domain.Role
}

// Session is injected into the store at construction. There is no ambient
// session state anywhere in this package.
type Session struct {
	// User is nil when nobody is signed in; the console is unreachable then.
	User *Identity
	// Logout invalidates the session. Invoked by the store when the server
	// reports an authorization failure.
	Logout func()
}

// Role returns the acting role, or the empty role when no one is signed in.
// The empty role holds no permissions, so every guard fails closed.
func (s Session) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
