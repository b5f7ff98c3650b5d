package rider

import (
	"hatod/internal/pkg/errs"
)

// Availability represents a rider's dispatch availability as a value object.
// Only AVAILABLE riders are considered for dispatch; a rider flips to BUSY
// while carrying an active order and back to AVAILABLE when it completes.
//
// The zero value is invalid. Use one of the predefined values or
// AvailabilityFromString.
type Availability int

const (
	// AvailabilityUnknown is the invalid zero value.
	AvailabilityUnknown Availability = iota
	// AvailabilityOffline means the rider is off shift and never dispatched.
	AvailabilityOffline
	// AvailabilityAvailable means the rider is on shift with no active order.
	AvailabilityAvailable
	// AvailabilityBusy means the rider is carrying an active order.
	AvailabilityBusy
)

var availabilityNames = map[Availability]string{
	AvailabilityOffline:   "OFFLINE",
	AvailabilityAvailable: "AVAILABLE",
	AvailabilityBusy:      "BUSY",
}

// AvailabilityFromString parses an availability from its wire name.
func AvailabilityFromString(s string) (Availability, error) {
	for availability, name := range availabilityNames {
		if name == s {
			return availability, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidError("availability: " + s)
}

// IsValid reports whether the availability is one of the defined values.
func (a Availability) IsValid() bool {
	_, ok := availabilityNames[a]
	return ok
}

// Name returns the wire name of the availability.
func (a Availability) Name() string {
	if name, ok := availabilityNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return a.Name()
}
