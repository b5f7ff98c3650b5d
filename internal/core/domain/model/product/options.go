package product

import (
	"errors"
	"sort"
	"strings"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"
)

// Domain errors for option value objects.
var (
	// ErrGroupNameIsRequired is returned when an option group has no name.
	ErrGroupNameIsRequired = errs.NewValueIsRequiredError("group name")
	// ErrChoiceNameIsRequired is returned when an option choice has no name.
	ErrChoiceNameIsRequired = errs.NewValueIsRequiredError("choice name")
	// ErrGroupHasNoChoices is returned when an option group carries no choices.
	ErrGroupHasNoChoices = errs.NewValueIsRequiredError("group choices")
	// ErrSurchargeIsNegative is returned when a choice carries a negative surcharge.
	ErrSurchargeIsNegative = errs.NewValueIsInvalidError("surcharge")
)

// OptionChoice is one selectable variant inside an option group,
// e.g. "Large" inside the "Size" group, carrying a price surcharge.
type OptionChoice struct {
	name      string
	surcharge kernel.Money
}

// NewOptionChoice creates an OptionChoice with a non-negative surcharge.
func NewOptionChoice(name string, surcharge kernel.Money) (OptionChoice, error) {
	if name == "" {
		return OptionChoice{}, ErrChoiceNameIsRequired
	}
	if surcharge.IsNegative() {
		return OptionChoice{}, ErrSurchargeIsNegative
	}
	return OptionChoice{name: name, surcharge: surcharge}, nil
}

// Name returns the choice's display name.
func (c OptionChoice) Name() string {
	return c.name
}

// Surcharge returns the price added when this choice is selected.
func (c OptionChoice) Surcharge() kernel.Money {
	return c.surcharge
}

// OptionGroup is a named set of mutually relevant choices for a menu item,
// e.g. "Size": Regular/Large. Required groups must have exactly one choice
// selected; optional groups may have zero or more.
type OptionGroup struct {
	name     string
	required bool
	choices  []OptionChoice
}

// NewOptionGroup creates an OptionGroup with at least one choice.
func NewOptionGroup(name string, required bool, choices []OptionChoice) (OptionGroup, error) {
	group := OptionGroup{name: name, required: required, choices: choices}
	if err := group.Validate(); err != nil {
		return OptionGroup{}, err
	}
	return group, nil
}

// Validate checks the group's structural rules.
func (g OptionGroup) Validate() error {
	if g.name == "" {
		return ErrGroupNameIsRequired
	}
	if len(g.choices) == 0 {
		return ErrGroupHasNoChoices
	}
	for _, c := range g.choices {
		if c.name == "" {
			return ErrChoiceNameIsRequired
		}
	}
	return nil
}

// Name returns the group's display name.
func (g OptionGroup) Name() string {
	return g.name
}

// Required reports whether exactly one choice must be selected.
func (g OptionGroup) Required() bool {
	return g.required
}

// Choices returns the group's selectable choices.
func (g OptionGroup) Choices() []OptionChoice {
	return g.choices
}

// Choice looks up a choice by name.
func (g OptionGroup) Choice(name string) (OptionChoice, bool) {
	for _, c := range g.choices {
		if c.name == name {
			return c, true
		}
	}
	return OptionChoice{}, false
}

// OptionPicks is the raw option selection a client submits when adding a cart
// line: group name to chosen choice names. It is resolved against a MenuItem
// by the pricing engine, which validates required/optional rules and attaches
// surcharges. OptionPicks is one arm of the options tagged union; the other
// arm, FreeFormFields, is never priced.
type OptionPicks map[string][]string

// ChosenOption is a resolved selection: a group, the chosen choice and the
// surcharge snapshotted at selection time.
type ChosenOption struct {
	Group     string       `json:"group"`
	Choice    string       `json:"choice"`
	Surcharge kernel.Money `json:"surcharge"`
}

// SurchargeSum returns the total surcharge of a resolved selection.
func SurchargeSum(chosen []ChosenOption) kernel.Money {
	var sum kernel.Money
	for _, c := range chosen {
		sum = sum.Add(c.Surcharge)
	}
	return sum
}

// keyEscaper makes group and choice names safe inside a normalized key, so
// names containing the pair and list separators cannot collide two distinct
// selections into the same key.
var keyEscaper = strings.NewReplacer(`\`, `\\`, "=", `\=`, ";", `\;`)

// NormalizedKey derives the canonical identity of an option selection.
// Two selections with the same groups and choices produce the same key
// regardless of input order, which is what lets the cart merge identical
// (item, option-set) additions into a single line.
func NormalizedKey(chosen []ChosenOption) string {
	if len(chosen) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(chosen))
	for _, c := range chosen {
		pairs = append(pairs, keyEscaper.Replace(c.Group)+"="+keyEscaper.Replace(c.Choice))
	}
	sort.Strings(pairs)

	return strings.Join(pairs, ";")
}

// FreeFormFields is an opaque key/value payload for structured form data that
// accompanies some orders (e.g. service-request fields). It is passed through
// unvalidated and deliberately kept as a distinct type from OptionPicks so the
// pricing engine never has to guess which shape it received.
type FreeFormFields map[string]string

// Validate rejects empty keys; values are intentionally unconstrained.
func (f FreeFormFields) Validate() error {
	for k := range f {
		if k == "" {
			return errors.New("free-form field key must not be empty")
		}
	}
	return nil
}
