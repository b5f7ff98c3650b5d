package commands_test

import (
	"testing"
	"time"

	"hatod/internal/core/domain/model/cart"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/core/domain/model/rider"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	line, err := order.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), "Cheeseburger", 2, kernel.NewMoney(15000), nil)
	require.NoError(t, err)
	tea, err := order.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), "Iced tea", 1, kernel.NewMoney(5000), nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "HTD-20250601-A1B2", kernel.NewUUID(), kernel.NewUUID(),
		[]order.Line{line, tea}, kernel.NewMoney(4000), kernel.NewMoney(1000), testNow)
	require.NoError(t, err)
	return o
}

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	o := newPendingOrder(t)

	merchant, err := order.NewActor(order.RoleMerchant, kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, o.ChangeStatus(order.Confirmed, merchant, testNow))
	require.NoError(t, o.ChangeStatus(order.Preparing, merchant, testNow))
	require.NoError(t, o.ChangeStatus(order.ReadyForPickup, merchant, testNow))
	o.MarkPersisted()
	return o
}

func newAvailableRider(t *testing.T) *rider.Rider {
	t.Helper()

	r, err := rider.NewRider(kernel.NewUUID(), "Jun Cruz", "+639171234567")
	require.NoError(t, err)
	require.NoError(t, r.MarkAvailable())
	return r
}

func newBurgerMenuItem(t *testing.T, merchantID kernel.UUID) product.MenuItem {
	t.Helper()

	regular, err := product.NewOptionChoice("Regular", kernel.NewMoney(0))
	require.NoError(t, err)
	large, err := product.NewOptionChoice("Large", kernel.NewMoney(5000))
	require.NoError(t, err)
	size, err := product.NewOptionGroup("Size", true, []product.OptionChoice{regular, large})
	require.NoError(t, err)

	item, err := product.NewMenuItem(
		kernel.NewUUID(), merchantID, "Cheeseburger", kernel.NewMoney(15000),
		[]product.OptionGroup{size})
	require.NoError(t, err)
	return item
}

func newDraftWithLine(t *testing.T, customerID kernel.UUID, merchantID kernel.UUID) *cart.Draft {
	t.Helper()

	draft, err := cart.NewDraft(customerID, testNow)
	require.NoError(t, err)

	burger, err := cart.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), merchantID, "Cheeseburger", 2, kernel.NewMoney(15000), nil)
	require.NoError(t, err)
	require.NoError(t, draft.AddLine(burger, testNow))

	tea, err := cart.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), merchantID, "Iced tea", 1, kernel.NewMoney(5000), nil)
	require.NoError(t, err)
	require.NoError(t, draft.AddLine(tea, testNow))

	return draft
}
