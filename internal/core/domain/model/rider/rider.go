package rider

import (
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a rider without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")
	// ErrRiderIsNotAvailable is returned when marking busy a rider that is not AVAILABLE.
	ErrRiderIsNotAvailable = errors.New("rider is not available for dispatch")
	// ErrRiderIsBusy is returned when toggling the shift of a rider with an active order.
	ErrRiderIsBusy = errors.New("rider has an active order and cannot change shift")
)

// Rider represents a delivery rider in the system.
// It is an aggregate root that manages rider identity, shift availability,
// and last known position.
//
// Key responsibilities:
//   - Managing rider identity (ID, name, phone)
//   - Tracking shift availability (OFFLINE, AVAILABLE, BUSY)
//   - Tracking last known position for proximity-based dispatch
//   - Recording when the rider was last assigned an order, which drives
//     least-recently-assigned dispatch when positions are unknown
//
// Business rules:
//   - A new rider starts OFFLINE and has to go on shift explicitly
//   - Only an AVAILABLE rider can become BUSY
//   - A BUSY rider stays BUSY until its active order finishes; the shift
//     toggle can neither free it nor take it off shift
//
// Availability transitions guard correctness inside the aggregate; under
// concurrent dispatch the persistence layer additionally flips availability
// with a compare-and-set on the previously observed value.
type Rider struct {
	// id uniquely identifies the rider
	id kernel.UUID
	// name is the human-readable name of the rider
	name string
	// phone is the rider's contact number
	phone string
	// availability is the rider's current shift state
	availability Availability
	// location is the last reported position, nil when the rider has never reported one
	location *kernel.GeoPoint
	// lastAssignedAt is when the rider last received an order, nil for never
	lastAssignedAt *time.Time
	// guard ensures the rider was properly constructed
	guard guard.ConstructorGuard
}

// NewRider creates a new Rider with the specified parameters.
// The rider starts OFFLINE with no reported position and no assignment
// history. All parameters are validated; validation errors for multiple
// invalid parameters are aggregated.
func NewRider(id kernel.UUID, name string, phone string) (*Rider, error) {
	rider := &Rider{
		availability: AvailabilityOffline,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rider.setID(id),
		rider.setName(name),
		rider.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage,
// including its availability, last known position, and assignment history.
func RestoreRider(
	id kernel.UUID,
	name string,
	phone string,
	availability Availability,
	location *kernel.GeoPoint,
	lastAssignedAt *time.Time,
) (*Rider, error) {
	rider, err := NewRider(id, name, phone)
	if err != nil {
		return nil, err
	}

	if !availability.IsValid() {
		return nil, errs.NewValueIsInvalidError("availability")
	}
	if location != nil {
		if err = location.Validate(); err != nil {
			return nil, err
		}
	}

	rider.availability = availability
	rider.location = location
	rider.lastAssignedAt = lastAssignedAt
	return rider, nil
}

// IsEqual compares two riders for equality based on their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

// Validate checks if the Rider was properly constructed through a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the unique identifier of the rider.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the human-readable name of the rider.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's contact number.
func (r *Rider) Phone() string {
	return r.phone
}

// Availability returns the rider's current shift state.
func (r *Rider) Availability() Availability {
	return r.availability
}

// Location returns the rider's last reported position, or nil when the rider
// has never reported one.
func (r *Rider) Location() *kernel.GeoPoint {
	return r.location
}

// LastAssignedAt returns when the rider last received an order, or nil for never.
func (r *Rider) LastAssignedAt() *time.Time {
	return r.lastAssignedAt
}

// ReportLocation updates the rider's last known position.
func (r *Rider) ReportLocation(location kernel.GeoPoint) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	r.location = &location
	return nil
}

// MarkAvailable puts the rider on shift. Transitioning from AVAILABLE is a
// no-op. A BUSY rider cannot toggle itself back on shift while its order is
// in flight; it is freed through Release when the order finishes.
func (r *Rider) MarkAvailable() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.availability == AvailabilityBusy {
		return ErrRiderIsBusy
	}

	r.availability = AvailabilityAvailable
	return nil
}

// Release returns the rider to AVAILABLE after its active order is delivered
// or cancelled. Unlike MarkAvailable it may free a BUSY rider.
func (r *Rider) Release() error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.availability = AvailabilityAvailable
	return nil
}

// MarkBusy records that the rider received an order.
// Only an AVAILABLE rider can become BUSY; the assignment time is recorded
// so future dispatch can prefer the least recently assigned rider.
func (r *Rider) MarkBusy(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.availability != AvailabilityAvailable {
		return ErrRiderIsNotAvailable
	}

	r.availability = AvailabilityBusy
	r.lastAssignedAt = &now
	return nil
}

// MarkOffline takes the rider off shift.
// A BUSY rider must finish its active order first.
func (r *Rider) MarkOffline() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.availability == AvailabilityBusy {
		return ErrRiderIsBusy
	}

	r.availability = AvailabilityOffline
	return nil
}

// setID sets the rider's unique identifier with validation.
func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

// setName sets the rider's name with validation.
func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	r.name = name
	return nil
}

// setPhone sets the rider's contact number with validation.
func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	r.phone = phone
	return nil
}
