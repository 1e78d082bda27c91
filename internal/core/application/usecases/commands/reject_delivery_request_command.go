package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRejectDeliveryRequestCommandIsNotConstructed = errors.New(
	"RejectDeliveryRequestCommand must be created via NewRejectDeliveryRequestCommand constructor",
)

// RejectDeliveryRequestCommand represents a driver declining a delivery request.
// Declining is final for that request; the order continues its search with the
// remaining candidates.
type RejectDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectDeliveryRequestCommand creates a command for a driver to decline a request.
func NewRejectDeliveryRequestCommand(requestID, driverID kernel.UUID) (RejectDeliveryRequestCommand, error) {
	command := RejectDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setDriverID(driverID),
	); err != nil {
		return RejectDeliveryRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryRequestCommandIsNotConstructed)
}

// RequestID returns the delivery request being declined.
func (c RejectDeliveryRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DriverID returns the driver declining the request.
func (c RejectDeliveryRequestCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *RejectDeliveryRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestID", err)
	}

	c.requestID = requestID
	return nil
}

func (c *RejectDeliveryRequestCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}

	c.driverID = driverID
	return nil
}
