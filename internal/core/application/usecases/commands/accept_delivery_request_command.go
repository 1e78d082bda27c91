package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptDeliveryRequestCommandIsNotConstructed = errors.New(
	"AcceptDeliveryRequestCommand must be created via NewAcceptDeliveryRequestCommand constructor",
)

// AcceptDeliveryRequestCommand represents a driver accepting a delivery request.
// Acceptance is the arbitration point of the dispatch workflow: when several
// drivers hold pending requests for the same order, the first accept wins and
// every other pending request is marked missed.
//
// Example:
//
//	cmd, err := NewAcceptDeliveryRequestCommand(requestID, driverID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrRequestNoLongerAvailable) {
//	    // another driver got the order first
//	}
type AcceptDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryRequestCommand creates a command for a driver to accept a request.
func NewAcceptDeliveryRequestCommand(requestID, driverID kernel.UUID) (AcceptDeliveryRequestCommand, error) {
	command := AcceptDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setDriverID(driverID),
	); err != nil {
		return AcceptDeliveryRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryRequestCommandIsNotConstructed)
}

// RequestID returns the delivery request being accepted.
func (c AcceptDeliveryRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DriverID returns the driver accepting the request.
func (c AcceptDeliveryRequestCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AcceptDeliveryRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestID", err)
	}

	c.requestID = requestID
	return nil
}

func (c *AcceptDeliveryRequestCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}

	c.driverID = driverID
	return nil
}
