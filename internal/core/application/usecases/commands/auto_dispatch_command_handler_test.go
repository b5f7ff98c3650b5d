package commands_test

import (
	"testing"

	"hatod/internal/core/application/usecases/commands"
	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/core/domain/services"
	"hatod/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAutoDispatchCommandHandler_Handle_NoOrderWaiting(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetFirstReadyUnassigned", ctx).
		Return(nil, errs.NewObjectNotFoundError("orderId", nil))

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewAutoDispatchCommandHandler(
		factory, new(MockGeoGateway), services.NewDispatchCoordinator(),
	)

	err := handler.Handle(ctx, commands.NewAutoDispatchCommand())
	assert.ErrorIs(t, err, commands.ErrNoOrderFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAutoDispatchCommandHandler_Handle_NoRiderAvailable(t *testing.T) {
	ctx := t.Context()

	aggregate := newReadyOrder(t)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetFirstReadyUnassigned", ctx).Return(aggregate, nil)

	riderRepo := new(MockRiderRepository)
	riderRepo.On("GetAllAvailable", ctx).Return([]*rider.Rider{}, nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RiderRepository").Return(riderRepo)
	uow.On("Rollback", ctx).Return(nil)

	geo := new(MockGeoGateway)
	geo.On("MerchantLocation", ctx, aggregate.MerchantID()).Return(nil, nil)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewAutoDispatchCommandHandler(factory, geo, services.NewDispatchCoordinator())

	err := handler.Handle(ctx, commands.NewAutoDispatchCommand())
	assert.ErrorIs(t, err, services.ErrNoRiderAvailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAutoDispatchCommandHandler_Handle_AssignsNearestRider(t *testing.T) {
	ctx := t.Context()

	aggregate := newReadyOrder(t)

	pickup, err := kernel.NewGeoPoint(14.5995, 120.9842)
	require.NoError(t, err)

	near := newAvailableRider(t)
	nearAt, err := kernel.NewGeoPoint(14.6000, 120.9850)
	require.NoError(t, err)
	require.NoError(t, near.ReportLocation(nearAt))

	far := newAvailableRider(t)
	farAt, err := kernel.NewGeoPoint(14.7000, 121.1000)
	require.NoError(t, err)
	require.NoError(t, far.ReportLocation(farAt))

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetFirstReadyUnassigned", ctx).Return(aggregate, nil)
	orderRepo.On("AssignRider", ctx, aggregate).Return(nil)

	riderRepo := new(MockRiderRepository)
	riderRepo.On("GetAllAvailable", ctx).Return([]*rider.Rider{far, near}, nil)
	riderRepo.On("UpdateAvailability", ctx, near, rider.AvailabilityAvailable).Return(nil)

	assignmentRepo := new(MockAssignmentRepository)
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*rider.Assignment")).Return(nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RiderRepository").Return(riderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	geo := new(MockGeoGateway)
	geo.On("MerchantLocation", ctx, aggregate.MerchantID()).Return(&pickup, nil)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewAutoDispatchCommandHandler(factory, geo, services.NewDispatchCoordinator())

	require.NoError(t, handler.Handle(ctx, commands.NewAutoDispatchCommand()))

	require.NotNil(t, aggregate.RiderID())
	assert.True(t, aggregate.RiderID().IsEqual(near.ID()))
	assert.Equal(t, rider.AvailabilityBusy, near.Availability())
	assert.Equal(t, rider.AvailabilityAvailable, far.Availability())

	orderRepo.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewAutoDispatchCommand(t *testing.T) {
	cmd := commands.NewAutoDispatchCommand()
	assert.NoError(t, cmd.Validate())

	var empty commands.AutoDispatchCommand
	assert.ErrorIs(t, empty.Validate(), commands.ErrAutoDispatchCommandIsNotConstructed)
}
