package rider

import (
	"testing"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRider(t *testing.T) *Rider {
	t.Helper()
	r, err := NewRider(kernel.NewUUID(), "Jun Cruz", "+639171234567")
	require.NoError(t, err)
	return r
}

func Test_NewRider(t *testing.T) {
	r := newTestRider(t)

	assert.Equal(t, "Jun Cruz", r.Name())
	assert.Equal(t, "+639171234567", r.Phone())
	assert.Equal(t, AvailabilityOffline, r.Availability())
	assert.Nil(t, r.Location())
	assert.Nil(t, r.LastAssignedAt())
}

func Test_NewRider_Validation(t *testing.T) {
	_, err := NewRider(kernel.UUID{}, "Jun", "+63917")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = NewRider(kernel.NewUUID(), "", "+63917")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = NewRider(kernel.NewUUID(), "Jun", "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func Test_AvailabilityTransitions(t *testing.T) {
	t.Run("offline rider cannot be marked busy", func(t *testing.T) {
		r := newTestRider(t)
		assert.ErrorIs(t, r.MarkBusy(testNow), ErrRiderIsNotAvailable)
	})

	t.Run("available rider becomes busy and records assignment time", func(t *testing.T) {
		r := newTestRider(t)
		require.NoError(t, r.MarkAvailable())
		require.NoError(t, r.MarkBusy(testNow))

		assert.Equal(t, AvailabilityBusy, r.Availability())
		require.NotNil(t, r.LastAssignedAt())
		assert.Equal(t, testNow, *r.LastAssignedAt())
	})

	t.Run("busy rider cannot be marked busy again", func(t *testing.T) {
		r := newTestRider(t)
		require.NoError(t, r.MarkAvailable())
		require.NoError(t, r.MarkBusy(testNow))

		assert.ErrorIs(t, r.MarkBusy(testNow), ErrRiderIsNotAvailable)
	})

	t.Run("busy rider cannot go offline", func(t *testing.T) {
		r := newTestRider(t)
		require.NoError(t, r.MarkAvailable())
		require.NoError(t, r.MarkBusy(testNow))

		assert.ErrorIs(t, r.MarkOffline(), ErrRiderIsBusy)
	})

	t.Run("busy rider cannot toggle itself back on shift", func(t *testing.T) {
		r := newTestRider(t)
		require.NoError(t, r.MarkAvailable())
		require.NoError(t, r.MarkBusy(testNow))

		assert.ErrorIs(t, r.MarkAvailable(), ErrRiderIsBusy)
		assert.Equal(t, AvailabilityBusy, r.Availability())
	})

	t.Run("released rider frees up and can go offline", func(t *testing.T) {
		r := newTestRider(t)
		require.NoError(t, r.MarkAvailable())
		require.NoError(t, r.MarkBusy(testNow))
		require.NoError(t, r.Release())
		require.NoError(t, r.MarkOffline())

		assert.Equal(t, AvailabilityOffline, r.Availability())
	})
}

func Test_ReportLocation(t *testing.T) {
	r := newTestRider(t)

	point, err := kernel.NewGeoPoint(14.5995, 120.9842)
	require.NoError(t, err)
	require.NoError(t, r.ReportLocation(point))

	require.NotNil(t, r.Location())
	assert.True(t, r.Location().IsEqual(point))
}

func Test_RestoreRider(t *testing.T) {
	point, err := kernel.NewGeoPoint(10.3157, 123.8854)
	require.NoError(t, err)

	r, err := RestoreRider(kernel.NewUUID(), "Liza", "+63918", AvailabilityBusy, &point, &testNow)
	require.NoError(t, err)

	assert.Equal(t, AvailabilityBusy, r.Availability())
	assert.Equal(t, testNow, *r.LastAssignedAt())

	_, err = RestoreRider(kernel.NewUUID(), "Liza", "+63918", AvailabilityUnknown, nil, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_AvailabilityFromString(t *testing.T) {
	for _, name := range []string{"OFFLINE", "AVAILABLE", "BUSY"} {
		availability, err := AvailabilityFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, availability.Name())
	}

	_, err := AvailabilityFromString("SLEEPING")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Rider_NotConstructed(t *testing.T) {
	var r Rider
	assert.ErrorIs(t, r.MarkAvailable(), ErrRiderIsNotConstructed)
}

func Test_Assignment(t *testing.T) {
	assignment, err := NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testNow)
	require.NoError(t, err)

	assert.True(t, assignment.IsActive())
	assert.Nil(t, assignment.ReleasedAt())

	later := testNow.Add(5 * time.Minute)
	require.NoError(t, assignment.Release(later))

	assert.False(t, assignment.IsActive())
	require.NotNil(t, assignment.ReleasedAt())
	assert.Equal(t, later, *assignment.ReleasedAt())

	assert.ErrorIs(t, assignment.Release(later), ErrAssignmentAlreadyReleased)
}
