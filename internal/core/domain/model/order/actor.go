package order

import (
	"fmt"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// Role identifies the kind of actor attempting an order operation.
// The lifecycle table gates every transition by role; rider edges are
// additionally bound to the assigned rider's identity.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota
	// RoleCustomer is the customer who placed the order.
	RoleCustomer
	// RoleMerchant is the merchant fulfilling the order.
	RoleMerchant
	// RoleRider is a delivery rider.
	RoleRider
	// RoleAdmin is a marketplace operator with override powers.
	RoleAdmin
	// RoleDispatcher is the automatic dispatch process.
	RoleDispatcher
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleMerchant:   "merchant",
		RoleRider:      "rider",
		RoleAdmin:      "admin",
		RoleDispatcher: "dispatcher",
	}
}

// Validate checks that the Role is one of the defined actor kinds.
func (r Role) Validate() error {
	if r < RoleCustomer || r > RoleDispatcher {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name, e.g. "merchant".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a role name produced by Role.String.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Actor is the identified party attempting an order operation: a role plus
// the party's identifier. The identifier is what lets the aggregate enforce
// that only the assigned rider advances rider edges.
type Actor struct {
	role Role
	id   kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated role and identity.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		role:  role,
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DispatcherActor returns the system actor used by the automatic dispatch
// process. It carries a fresh identity per invocation; the identity is only
// used for event attribution.
func DispatcherActor() Actor {
	return Actor{
		role:  RoleDispatcher,
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate checks the Actor was created through a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(errs.NewValueIsRequiredError("actor must be created via NewActor"))
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// String returns "role:id" for logs and event payloads.
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
