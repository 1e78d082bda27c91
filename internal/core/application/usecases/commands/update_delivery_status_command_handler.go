package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler advances the delivery lifecycle of an
// accepted order. When the delivery resolves in a state that frees the driver
// (delivered or returned), the driver's current request is cleared in the
// same transaction so they become available for new offers.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory OrderDriverUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery progress updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory OrderDriverUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery status update.
// Invalid transitions (per the delivery state machine) and updates on orders
// that were never accepted return validation errors.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, command UpdateDeliveryStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	driversRepo := uow.DriverRepository()

	updatedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := nowUTC()
	switch command.NewStatus() {
	case order.OutForDelivery:
		err = updatedOrder.StartDelivery(now)
	case order.Delivered:
		err = updatedOrder.CompleteDelivery(now)
	case order.DeliveryFailed:
		err = updatedOrder.FailDelivery(now)
	case order.Returned:
		err = updatedOrder.ReturnDelivery(now)
	default:
		err = errs.NewValueIsInvalidError(
			"deliveryStatus: " + command.NewStatus().String() + " is not a reachable delivery status")
	}
	if err != nil {
		return err
	}

	if err := ordersRepo.Update(ctx, updatedOrder); err != nil {
		return err
	}

	if command.NewStatus().FreesDriver() && updatedOrder.Driver() != nil {
		assignedDriver, err := driversRepo.Get(ctx, *updatedOrder.Driver())
		if err != nil {
			return err
		}

		if err := assignedDriver.ClearCurrentRequest(); err != nil {
			return err
		}

		if err := driversRepo.Update(ctx, assignedDriver); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
