package ports

import (
	"context"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// AuthService issues and revokes the session tokens the console signs in with.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
}
