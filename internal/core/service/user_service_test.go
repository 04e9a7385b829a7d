package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pipeboard/roster-console/internal/core/domain"
	"github.com/pipeboard/roster-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   []*domain.User // insertion order, mirrors the Mongo sort
	nextID  int
	calls   map[string]int // method name -> invocation count
	ListErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, calls: make(map[string]int)}
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.calls["List"]++
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		clone := *u
		out[i] = &clone
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls["FindByID"]++
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls["FindByEmail"]++
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls["Create"]++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.nextID++
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls["Update"]++
	for i, u := range r.users {
		if u.ID == user.ID {
			clone := *user
			r.users[i] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.calls["Delete"]++
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newUserService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestUserService_Create_DefaultsRoleToDeveloper(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	created, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != domain.RoleDeveloper {
		t.Fatalf("expected default role developer, got %s", created.Role)
	}
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	created, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "hunter2!",
		Role:     domain.RoleTester,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash == "hunter2!" || created.PasswordHash == "" {
		t.Fatalf("password stored in the clear or empty")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2!")) != nil {
		t.Fatalf("stored hash does not verify against original password")
	}
}

func TestUserService_Create_ViewerAllowed(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	// Viewers may enroll new teammates even though they cannot edit or delete.
	if _, err := svc.Create(context.Background(), domain.RoleViewer, ports.CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "pw12345",
	}); err != nil {
		t.Fatalf("viewer create should be allowed: %v", err)
	}
}

func TestUserService_Create_ForbiddenRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleDeveloper, domain.RoleDevOps, domain.RoleTester} {
		repo := newStubUserRepo()
		svc := newUserService(repo)

		_, err := svc.Create(context.Background(), role, ports.CreateUserInput{
			Name:     "Mallory",
			Email:    "mallory@example.com",
			Password: "pw12345",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
		if repo.calls["Create"] != 0 {
			t.Fatalf("role %s: repository reached despite forbidden role", role)
		}
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	input := ports.CreateUserInput{Name: "Dana", Email: "dana@example.com", Password: "pw12345"}
	if _, err := svc.Create(context.Background(), domain.RoleAdmin, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.RoleAdmin, input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name:  "NoPassword",
		Email: "np@example.com",
	})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if repo.calls["Create"] != 0 {
		t.Fatalf("repository reached despite incomplete input")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "pw12345",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete guards
// ---------------------------------------------------------------------------

func TestUserService_Update_AdminOnly(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleViewer, domain.RoleDeveloper, domain.RoleDevOps, domain.RoleTester} {
		repo := newStubUserRepo()
		svc := newUserService(repo)

		_, err := svc.Update(context.Background(), role, "u1", ports.UpdateUserInput{
			Name: "X", Email: "x@example.com", Role: domain.RoleDeveloper,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
		if repo.calls["Update"] != 0 || repo.calls["FindByID"] != 0 {
			t.Fatalf("role %s: repository reached despite forbidden role", role)
		}
	}
}

func TestUserService_Update_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	created, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name: "Alice", Email: "alice@example.com", Password: "pw12345",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), domain.RoleAdmin, created.ID, ports.UpdateUserInput{
		Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin after update, got %s", updated.Role)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("update must not touch the stored credential")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), domain.RoleAdmin, "ghost", ports.UpdateUserInput{
		Name: "G", Email: "g@example.com", Role: domain.RoleViewer,
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_AdminOnly(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleViewer, domain.RoleDeveloper, domain.RoleDevOps, domain.RoleTester} {
		repo := newStubUserRepo()
		svc := newUserService(repo)

		err := svc.Delete(context.Background(), role, "u1")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
		if repo.calls["Delete"] != 0 {
			t.Fatalf("role %s: repository reached despite forbidden role", role)
		}
	}
}

func TestUserService_Delete_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	created, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
		Name: "Temp", Email: "temp@example.com", Password: "pw12345",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), domain.RoleAdmin, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	users, err := svc.List(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty roster, got %d entries", len(users))
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestUserService_List_PreservesInsertionOrder(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Create(context.Background(), domain.RoleAdmin, ports.CreateUserInput{
			Name: name, Email: name + "@example.com", Password: "pw12345",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	users, err := svc.List(context.Background(), domain.RoleTester)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"first", "second", "third"} {
		if users[i].Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, users[i].Name)
		}
	}
}
