package services

import (
	"errors"
	"fmt"
	"math"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
)

// ErrInvalidSelection is returned when a cart line's option selection does not
// match the menu item's option groups: a required group left without exactly
// one choice, an unknown group or choice, or a non-positive quantity.
var ErrInvalidSelection = errors.New("invalid option selection")

// InvalidSelectionError carries the reason an option selection was rejected.
// It unwraps to ErrInvalidSelection for classification.
type InvalidSelectionError struct {
	Reason string
}

// NewInvalidSelectionError creates an InvalidSelectionError with a human-readable reason.
func NewInvalidSelectionError(reason string) *InvalidSelectionError {
	return &InvalidSelectionError{Reason: reason}
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidSelection, e.Reason)
}

func (e *InvalidSelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// FeeTable is the configured delivery fee schedule.
// Fees grow with distance from a base, clamped to [MinFee, MaxFee]; when a
// distance cannot be computed the flat default applies.
type FeeTable struct {
	// BaseFee is charged regardless of distance.
	BaseFee kernel.Money
	// PerKm is added for every kilometer of great-circle distance.
	PerKm kernel.Money
	// MinFee and MaxFee bound the computed fee.
	MinFee kernel.Money
	MaxFee kernel.Money
	// FlatDefault applies when either coordinate is unknown.
	FlatDefault kernel.Money
}

// Validate checks the fee table is internally consistent.
func (t FeeTable) Validate() error {
	if t.BaseFee.IsNegative() || t.PerKm.IsNegative() ||
		t.MinFee.IsNegative() || t.MaxFee.IsNegative() || t.FlatDefault.IsNegative() {
		return errors.New("fee table must not contain negative amounts")
	}
	if t.MaxFee < t.MinFee {
		return errors.New("fee table max fee must not be below min fee")
	}
	return nil
}

// PricingEngine is a domain service that totals cart lines and estimates
// delivery fees. All its operations are pure: results are snapshotted onto
// order lines at checkout and never recomputed retroactively, so the same
// inputs must always produce the same outputs.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// LineTotal resolves the submitted option picks against the menu item's
// option groups and totals the line.
//
// Selection rules:
//   - a required group must have exactly one choice selected
//   - an optional group may have zero or more distinct choices
//   - picks naming an unknown group or choice are rejected
//
// Returns the line total, (unitPrice + Σ surcharges) × quantity, together
// with the resolved selection snapshot in the item's group order.
func (PricingEngine) LineTotal(
	item product.MenuItem,
	quantity int,
	picks product.OptionPicks,
) (kernel.Money, []product.ChosenOption, error) {
	if err := item.Validate(); err != nil {
		return 0, nil, err
	}
	if quantity <= 0 {
		return 0, nil, NewInvalidSelectionError(fmt.Sprintf("quantity %d is not positive", quantity))
	}

	chosen, err := resolvePicks(item, picks)
	if err != nil {
		return 0, nil, err
	}

	total := item.UnitPrice().Add(product.SurchargeSum(chosen)).MulInt(quantity)
	return total, chosen, nil
}

// EstimateDeliveryFee computes the delivery fee for a route.
// The fee is BaseFee plus PerKm for every kilometer of great-circle distance,
// clamped to the table's [MinFee, MaxFee] band. When either coordinate is
// unknown the flat default applies unclamped.
func (PricingEngine) EstimateDeliveryFee(origin *kernel.GeoPoint, destination *kernel.GeoPoint, table FeeTable) kernel.Money {
	if origin == nil || destination == nil {
		return table.FlatDefault
	}

	distanceKm := origin.DistanceKmTo(*destination)
	variable := kernel.NewMoney(int64(math.Round(float64(table.PerKm.Centavos()) * distanceKm)))

	return table.BaseFee.Add(variable).Clamp(table.MinFee, table.MaxFee)
}

// resolvePicks matches picks against the item's groups, producing the
// surcharge-carrying selection snapshot.
func resolvePicks(item product.MenuItem, picks product.OptionPicks) ([]product.ChosenOption, error) {
	groups := item.OptionGroups()

	known := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		known[group.Name()] = struct{}{}
	}
	for groupName := range picks {
		if _, ok := known[groupName]; !ok {
			return nil, NewInvalidSelectionError(fmt.Sprintf("unknown option group %q", groupName))
		}
	}

	var chosen []product.ChosenOption
	for _, group := range groups {
		names := picks[group.Name()]

		if group.Required() && len(names) != 1 {
			return nil, NewInvalidSelectionError(
				fmt.Sprintf("option group %q requires exactly one choice, got %d", group.Name(), len(names)))
		}

		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if _, dup := seen[name]; dup {
				return nil, NewInvalidSelectionError(
					fmt.Sprintf("choice %q selected twice in group %q", name, group.Name()))
			}
			seen[name] = struct{}{}

			choice, ok := group.Choice(name)
			if !ok {
				return nil, NewInvalidSelectionError(
					fmt.Sprintf("unknown choice %q in group %q", name, group.Name()))
			}

			chosen = append(chosen, product.ChosenOption{
				Group:     group.Name(),
				Choice:    choice.Name(),
				Surcharge: choice.Surcharge(),
			})
		}
	}

	return chosen, nil
}
