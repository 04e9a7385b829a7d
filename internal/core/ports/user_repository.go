package ports

import (
	"context"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// UserRepository defines persistence operations for roster accounts.
type UserRepository interface {
	// List returns every account in insertion order. The console treats this
	// order as canonical, so implementations must not reorder.
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
