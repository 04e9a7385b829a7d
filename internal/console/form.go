package console

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// Mode is the form's state: creating a new account or editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Draft holds the form's in-progress, unsaved field values. It is owned
// exclusively by the Form and never aliases a roster record.
type Draft struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"required,email"`
	Password string      // required in create mode only, checked in Submit
	Role     domain.Role `validate:"required,oneof=admin developer viewer devops tester"`
}

func emptyDraft() Draft {
	return Draft{Role: domain.DefaultRole}
}

// Form is the create/edit form controller. It talks to the store only through
// the injected submit callback, and resets its draft as soon as the callback
// has been invoked: the reset is decoupled from the callback's asynchronous
// outcome.
type Form struct {
	draft    Draft
	target   *domain.User // nil = create mode
	onSubmit func(targetID string, p Payload)
	onCancel func()
	validate *validator.Validate
}

// NewForm builds a form in create mode. onSubmit receives the editing
// target's id (empty in create mode) and the normalized payload. onCancel may
// be nil.
func NewForm(onSubmit func(targetID string, p Payload), onCancel func()) *Form {
	return &Form{
		draft:    emptyDraft(),
		onSubmit: onSubmit,
		onCancel: onCancel,
		validate: validator.New(),
	}
}

// Mode reports whether the form is creating or editing.
func (f *Form) Mode() Mode {
	if f.target != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Draft returns the current field values.
func (f *Form) Draft() Draft {
	return f.draft
}

// SetTarget switches the form between modes. A non-nil target seeds the draft
// from the record with a blank password, regardless of any prior draft state.
// A nil target resets to an empty create draft.
func (f *Form) SetTarget(target *domain.User) {
	if target == nil {
		f.target = nil
		f.draft = emptyDraft()
		return
	}

	clone := *target
	f.target = &clone
	role := clone.Role
	if role == "" {
		role = domain.DefaultRole
	}
	f.draft = Draft{
		Name:  clone.Name,
		Email: clone.Email,
		Role:  role,
	}
}

// Target returns a copy of the record being edited, or nil in create mode.
func (f *Form) Target() *domain.User {
	if f.target == nil {
		return nil
	}
	clone := *f.target
	return &clone
}

func (f *Form) SetName(v string)     { f.draft.Name = v }
func (f *Form) SetEmail(v string)    { f.draft.Email = v }
func (f *Form) SetPassword(v string) { f.draft.Password = v }

// SetRole updates the draft's role. Selecting a role has no effect beyond the
// draft and the description returned by RoleDescription.
func (f *Form) SetRole(r domain.Role) { f.draft.Role = r }

// RoleDescription returns the hint text for the currently selected role.
func (f *Form) RoleDescription() string {
	return f.draft.Role.Description()
}

// Cancel returns the form to create mode with an empty draft and notifies the
// owner so the editing target is cleared.
func (f *Form) Cancel() {
	f.target = nil
	f.draft = emptyDraft()
	if f.onCancel != nil {
		f.onCancel()
	}
}

// Submit validates the draft, hands the normalized payload to the submit
// callback, and resets to create mode. The password travels only in create
// mode; the edit payload never carries a password key. The draft is cleared
// once the callback has been invoked, independent of the network outcome.
func (f *Form) Submit() error {
	if err := f.validate.Struct(f.draft); err != nil {
		return fmt.Errorf("draft invalid: %w", err)
	}

	payload := Payload{
		Name:  f.draft.Name,
		Email: f.draft.Email,
		Role:  f.draft.Role,
	}

	var targetID string
	if f.target == nil {
		if f.draft.Password == "" {
			return fmt.Errorf("draft invalid: password is required")
		}
		payload.Password = f.draft.Password
	} else {
		targetID = f.target.ID
	}

	f.onSubmit(targetID, payload)

	f.target = nil
	f.draft = emptyDraft()
	return nil
}
