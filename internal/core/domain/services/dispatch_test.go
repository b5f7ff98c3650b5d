package services

import (
	"testing"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dispatchNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func availableRider(t *testing.T, name string) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), name, "+63917")
	require.NoError(t, err)
	require.NoError(t, r.MarkAvailable())
	return r
}

func riderAt(t *testing.T, name string, lat, lng float64) *rider.Rider {
	t.Helper()
	r := availableRider(t, name)
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	require.NoError(t, r.ReportLocation(point))
	return r
}

func riderAssignedAt(t *testing.T, name string, at time.Time) *rider.Rider {
	t.Helper()
	r := availableRider(t, name)
	require.NoError(t, r.MarkBusy(at))
	require.NoError(t, r.MarkAvailable())
	return r
}

func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	line, err := order.NewLine(
		kernel.NewUUID(), kernel.NewUUID(), "Cheeseburger", 1, kernel.NewMoney(15000), nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "HTD-20260829-A1B2", kernel.NewUUID(), kernel.NewUUID(),
		[]order.Line{line}, kernel.NewMoney(4000), kernel.NewMoney(1000), dispatchNow)
	require.NoError(t, err)

	merchant, err := order.NewActor(order.RoleMerchant, kernel.NewUUID())
	require.NoError(t, err)
	admin, err := order.NewActor(order.RoleAdmin, kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, o.ChangeStatus(order.Confirmed, admin, dispatchNow))
	require.NoError(t, o.ChangeStatus(order.Preparing, merchant, dispatchNow))
	require.NoError(t, o.ChangeStatus(order.ReadyForPickup, merchant, dispatchNow))
	return o
}

func Test_RankCandidates_FiltersUnavailable(t *testing.T) {
	coordinator := NewDispatchCoordinator()

	offline, err := rider.NewRider(kernel.NewUUID(), "Off Shift", "+63917")
	require.NoError(t, err)

	busy := availableRider(t, "Busy")
	require.NoError(t, busy.MarkBusy(dispatchNow))

	free := availableRider(t, "Free")

	ranked, err := coordinator.RankCandidates(nil, []*rider.Rider{offline, busy, free})
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Free", ranked[0].Name())
}

func Test_RankCandidates_ByProximity(t *testing.T) {
	coordinator := NewDispatchCoordinator()

	pickup, err := kernel.NewGeoPoint(14.5995, 120.9842)
	require.NoError(t, err)

	near := riderAt(t, "Near", 14.6005, 120.9850)
	far := riderAt(t, "Far", 14.7000, 121.0500)
	noLocation := availableRider(t, "No Location")

	ranked, err := coordinator.RankCandidates(&pickup, []*rider.Rider{noLocation, far, near})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Near", ranked[0].Name())
	assert.Equal(t, "Far", ranked[1].Name())
	assert.Equal(t, "No Location", ranked[2].Name())
}

func Test_RankCandidates_ByLeastRecentlyAssigned(t *testing.T) {
	coordinator := NewDispatchCoordinator()

	recent := riderAssignedAt(t, "Recent", dispatchNow)
	stale := riderAssignedAt(t, "Stale", dispatchNow.Add(-2*time.Hour))
	never := availableRider(t, "Never")

	ranked, err := coordinator.RankCandidates(nil, []*rider.Rider{recent, stale, never})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Never", ranked[0].Name())
	assert.Equal(t, "Stale", ranked[1].Name())
	assert.Equal(t, "Recent", ranked[2].Name())
}

func Test_SelectRider(t *testing.T) {
	coordinator := NewDispatchCoordinator()

	t.Run("picks the best candidate", func(t *testing.T) {
		o := readyOrder(t)
		stale := riderAssignedAt(t, "Stale", dispatchNow.Add(-2*time.Hour))
		recent := riderAssignedAt(t, "Recent", dispatchNow)

		selected, err := coordinator.SelectRider(o, nil, []*rider.Rider{recent, stale})
		require.NoError(t, err)
		assert.Equal(t, "Stale", selected.Name())
	})

	t.Run("no available rider", func(t *testing.T) {
		o := readyOrder(t)

		_, err := coordinator.SelectRider(o, nil, nil)
		assert.ErrorIs(t, err, ErrNoRiderAvailable)
	})

	t.Run("order not ready for pickup", func(t *testing.T) {
		line, err := order.NewLine(
			kernel.NewUUID(), kernel.NewUUID(), "Cheeseburger", 1, kernel.NewMoney(15000), nil)
		require.NoError(t, err)
		pending, err := order.NewOrder(
			kernel.NewUUID(), "HTD-20260829-C3D4", kernel.NewUUID(), kernel.NewUUID(),
			[]order.Line{line}, kernel.NewMoney(4000), kernel.NewMoney(1000), dispatchNow)
		require.NoError(t, err)

		_, err = coordinator.SelectRider(pending, nil, []*rider.Rider{availableRider(t, "Free")})
		assert.ErrorIs(t, err, order.ErrAssignmentConflict)
	})

	t.Run("order already assigned", func(t *testing.T) {
		o := readyOrder(t)
		riderID := kernel.NewUUID()
		dispatcher := order.DispatcherActor()
		require.NoError(t, o.AssignRider(riderID, dispatcher, dispatchNow))

		_, err := coordinator.SelectRider(o, nil, []*rider.Rider{availableRider(t, "Free")})
		assert.ErrorIs(t, err, order.ErrAssignmentConflict)
	})
}
