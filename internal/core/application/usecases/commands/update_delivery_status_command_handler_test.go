package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// acceptedOrderWithDriver builds an order accepted by the given driver,
// with the driver holding the current request.
func acceptedOrderWithDriver(t *testing.T, d *driver.Driver) *order.Order {
	t.Helper()
	o := searchingOrder(t, 5.0)
	require.NoError(t, o.AcceptBy(d.ID(), time.Now().UTC()))
	require.NoError(t, d.AssignCurrentRequest(kernel.NewUUID()))
	return o
}

func TestUpdateDeliveryStatusCommandHandler_Handle_StartDelivery(t *testing.T) {
	ctx := t.Context()

	assignedDriver := availableDriverNearVenue(t, "Alice")
	testOrder := acceptedOrderWithDriver(t, assignedDriver)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testOrder.ID(), order.OutForDelivery)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, testOrder.DeliveryStatus())
	// Driver stays busy while the order is out for delivery.
	driverRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredFreesDriver(t *testing.T) {
	ctx := t.Context()

	assignedDriver := availableDriverNearVenue(t, "Alice")
	testOrder := acceptedOrderWithDriver(t, assignedDriver)
	require.NoError(t, testOrder.StartDelivery(time.Now().UTC()))

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		driverRepo.On("Get", ctx, assignedDriver.ID()).Return(assignedDriver, nil).Once(),
		driverRepo.On("Update", ctx, assignedDriver).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.DeliveryStatus())
	assert.True(t, assignedDriver.IsAvailable())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_ReturnedFreesDriver(t *testing.T) {
	ctx := t.Context()

	assignedDriver := availableDriverNearVenue(t, "Alice")
	testOrder := acceptedOrderWithDriver(t, assignedDriver)
	require.NoError(t, testOrder.StartDelivery(time.Now().UTC()))
	require.NoError(t, testOrder.FailDelivery(time.Now().UTC()))

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testOrder.ID(), order.Returned)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	driverRepo.On("Get", ctx, assignedDriver.ID()).Return(assignedDriver, nil).Once()
	driverRepo.On("Update", ctx, assignedDriver).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Returned, testOrder.DeliveryStatus())
	assert.True(t, assignedDriver.IsAvailable())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	assignedDriver := availableDriverNearVenue(t, "Alice")
	testOrder := acceptedOrderWithDriver(t, assignedDriver)

	// Delivered straight from pending, without pickup.
	cmd, err := commands.NewUpdateDeliveryStatusCommand(testOrder.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_OrderNotAccepted(t *testing.T) {
	ctx := t.Context()

	testOrder := searchingOrder(t, 5.0)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(testOrder.ID(), order.OutForDelivery)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "once the order is accepted")
}

func TestNewUpdateDeliveryStatusCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, order.OutForDelivery)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, order.OutForDelivery, cmd.NewStatus())
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), order.DeliveryStatusUnknown)
		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		cmd := commands.UpdateDeliveryStatusCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
	})
}
