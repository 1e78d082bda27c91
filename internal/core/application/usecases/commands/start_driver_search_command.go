package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrStartDriverSearchCommandIsNotConstructed = errors.New(
	"StartDriverSearchCommand must be created via NewStartDriverSearchCommand constructor",
)

// StartDriverSearchCommand moves a pending order into the driver search.
// This is the venue confirmation trigger: once the venue accepts the order,
// the search begins at the initial radius and nearby drivers are offered it.
type StartDriverSearchCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	initialRadiusKm float64

	guard guard.ConstructorGuard
}

// NewStartDriverSearchCommand creates a command to begin the driver search for an order.
func NewStartDriverSearchCommand(orderID kernel.UUID, initialRadiusKm float64) (StartDriverSearchCommand, error) {
	command := StartDriverSearchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setInitialRadiusKm(initialRadiusKm),
	); err != nil {
		return StartDriverSearchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDriverSearchCommand) Validate() error {
	return c.guard.Validate(ErrStartDriverSearchCommandIsNotConstructed)
}

// OrderID returns the order to start searching for.
func (c StartDriverSearchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InitialRadiusKm returns the radius the search starts at, in kilometres.
func (c StartDriverSearchCommand) InitialRadiusKm() float64 {
	return c.initialRadiusKm
}

func (c *StartDriverSearchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartDriverSearchCommand) setInitialRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"initialRadiusKm", fmt.Errorf("%f is not greater than 0", radiusKm))
	}

	c.initialRadiusKm = radiusKm
	return nil
}
