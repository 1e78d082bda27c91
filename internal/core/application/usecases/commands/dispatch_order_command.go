package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand requests the creation of delivery requests for an order
// that is looking for a driver. Every available driver within the given radius
// of the venue receives one pending offer.
//
// Dispatching is idempotent: drivers who already hold a request for the order,
// in any status, are skipped. Re-running the command after a partial failure
// only fills in the missing offers.
//
// Example:
//
//	cmd, err := NewDispatchOrderCommand(orderID, 5.0)
//	if err != nil {
//	    return fmt.Errorf("invalid dispatch request: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderNotLookingForDriver) {
//	    // order was accepted, rejected, or never confirmed
//	}
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to offer an order to nearby drivers.
// Validates that the order ID is valid and the radius is positive.
func NewDispatchOrderCommand(orderID kernel.UUID, radiusKm float64) (DispatchOrderCommand, error) {
	command := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRadiusKm(radiusKm),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOrderCommandIsNotConstructed if validation fails.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RadiusKm returns the search radius around the venue in kilometres.
func (c DispatchOrderCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *DispatchOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DispatchOrderCommand) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"radiusKm", fmt.Errorf("%f is not greater than 0", radiusKm))
	}

	c.radiusKm = radiusKm
	return nil
}
