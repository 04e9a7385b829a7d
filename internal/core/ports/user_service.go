package ports

import (
	"context"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// CreateUserInput carries a new-account payload. Password is write-only: it
// is hashed immediately and never echoed back.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // empty = domain.DefaultRole
}

// UpdateUserInput carries an account edit. There is deliberately no password
// field: credentials cannot be changed through the roster form.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  domain.Role
}

// UserService defines the roster use cases. Every mutating call receives the
// acting role so authorization is enforced server-side, independent of
// whatever the console chose to render.
type UserService interface {
	List(ctx context.Context, actingRole domain.Role) ([]*domain.User, error)
	Create(ctx context.Context, actingRole domain.Role, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actingRole domain.Role, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actingRole domain.Role, id string) error
}
