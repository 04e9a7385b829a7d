package console

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// Store is the single source of truth for the roster on the client and the
// only component that talks to the roster API. The roster is always replaced
// wholesale with the server's response: there is no client-side merging, so
// the displayed state can be stale but never half-updated.
//
// Contract: every successful mutation refetches the full roster before
// returning, so the roster reflects at least the triggering mutation.
type Store struct {
	session Session
	client  RosterClient
	log     zerolog.Logger

	roster  []domain.User
	editing *domain.User // copied record, nil = create mode
}

// NewStore builds a Store around an injected session and API client.
func NewStore(session Session, client RosterClient, log zerolog.Logger) *Store {
	return &Store{session: session, client: client, log: log}
}

// Roster returns the last roster received from the server, in server order.
func (s *Store) Roster() []domain.User {
	out := make([]domain.User, len(s.roster))
	copy(out, s.roster)
	return out
}

// EditingTarget returns a copy of the record selected for editing, or nil in
// create mode.
func (s *Store) EditingTarget() *domain.User {
	if s.editing == nil {
		return nil
	}
	clone := *s.editing
	return &clone
}

// SelectForEdit marks a record as the editing target. Admin only; for any
// other role the call does nothing. A previous selection is silently
// replaced.
func (s *Store) SelectForEdit(user domain.User) {
	if !domain.Allowed(s.session.Role(), domain.OpEdit) {
		return
	}
	clone := user
	s.editing = &clone
}

// ClearEditing drops the editing target, returning the console to create
// mode.
func (s *Store) ClearEditing() {
	s.editing = nil
}

// SetSession swaps the acting identity. If the new role may no longer edit,
// any pending editing target is dropped.
func (s *Store) SetSession(session Session) {
	s.session = session
	if !domain.Allowed(session.Role(), domain.OpEdit) {
		s.editing = nil
	}
}

// FetchAll replaces the roster with the server's current view. On an
// authorization failure the session is signed out and no retry happens. Any
// other failure leaves the previous roster untouched.
func (s *Store) FetchAll(ctx context.Context) error {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.log.Warn().Msg("roster fetch unauthorized, signing out")
			if s.session.Logout != nil {
				s.session.Logout()
			}
			return err
		}
		s.log.Error().Err(err).Msg("roster fetch failed")
		return err
	}

	s.roster = users
	return nil
}

// Create submits a new account. An empty role defaults to developer. On
// success the roster is refetched and the editing target cleared; on failure
// the caller keeps its draft and may retry.
func (s *Store) Create(ctx context.Context, p Payload) error {
	if p.Role == "" {
		p.Role = domain.DefaultRole
	}

	if _, err := s.client.CreateUser(ctx, p); err != nil {
		s.log.Error().Err(err).Str("email", p.Email).Msg("create failed")
		return err
	}

	s.editing = nil
	return s.FetchAll(ctx)
}

// Update edits an existing account. Guarded: for any role but admin this is
// a silent no-op and no request leaves the process. On success the roster is
// refetched and the editing target cleared.
func (s *Store) Update(ctx context.Context, id string, p Payload) error {
	if !domain.Allowed(s.session.Role(), domain.OpEdit) {
		return nil
	}

	p.Password = ""
	if _, err := s.client.UpdateUser(ctx, id, p); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("update failed")
		return err
	}

	s.editing = nil
	return s.FetchAll(ctx)
}

// Delete removes an account. Same admin-only silent guard as Update. On
// success the roster is refetched.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !domain.Allowed(s.session.Role(), domain.OpDelete) {
		return nil
	}

	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("delete failed")
		return err
	}

	return s.FetchAll(ctx)
}
