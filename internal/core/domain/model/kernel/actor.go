package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Role identifies the kind of principal performing an operation.
// The auth collaborator verifies identity and role upstream; the domain
// trusts the supplied value and only checks it where an operation is
// restricted (admin-only confirmations, system-only transitions).
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the customer who placed the order.
	RoleCustomer

	// RoleAdmin is back-office staff with elevated permissions.
	RoleAdmin

	// RoleSystem is the service itself: payment webhook, expiration sweeper.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

// RoleFromString parses a role name as supplied by the auth collaborator.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the lowercase role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleAdmin && r != RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsAdmin reports whether the role carries admin permissions.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor or SystemActor")

// Actor is the verified identity on whose behalf an operation runs.
// It is supplied by the auth collaborator for API calls and synthesized
// as the system actor for webhook- and scheduler-driven transitions.
type Actor struct {
	id    string
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an actor from a verified identity. The id must be
// non-empty and the role valid.
func NewActor(id string, role Role) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// SystemActor returns the actor used for service-initiated transitions:
// payment confirmations and the expiration sweep.
func SystemActor() Actor {
	return Actor{
		id:    "system",
		role:  RoleSystem,
		guard: guard.NewConstructorGuard(),
	}
}

// ID returns the actor's identity as supplied by the auth collaborator.
func (a Actor) ID() string {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the actor was created via a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
