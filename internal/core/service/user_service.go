package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pipeboard/roster-console/internal/core/domain"
	"github.com/pipeboard/roster-console/internal/core/ports"
)

// UserService implements the roster use cases. It is the authoritative
// enforcement point for role permissions: the console hides controls for
// forbidden roles, but a stale or tampered client must still be rejected here.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns the full roster in insertion order. Every authenticated role
// may view the roster.
func (s *UserService) List(ctx context.Context, actingRole domain.Role) ([]*domain.User, error) {
	if !domain.Allowed(actingRole, domain.OpView) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// Create registers a new team member. Admins and viewers may create accounts;
// an omitted role defaults to developer.
func (s *UserService) Create(ctx context.Context, actingRole domain.Role, in ports.CreateUserInput) (*domain.User, error) {
	if !domain.Allowed(actingRole, domain.OpCreate) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update modifies name, email and role of an existing account. Admin only.
// The password is never touched through this path.
func (s *UserService) Update(ctx context.Context, actingRole domain.Role, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !domain.Allowed(actingRole, domain.OpEdit) {
		return nil, domain.ErrForbidden
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.Role = in.Role
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", string(in.Role)).Msg("user updated")
	return updated, nil
}

// Delete removes an account from the roster. Admin only.
func (s *UserService) Delete(ctx context.Context, actingRole domain.Role, id string) error {
	if !domain.Allowed(actingRole, domain.OpDelete) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
