package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepOrdersCommandIsNotConstructed = errors.New(
	"SweepOrdersCommand must be created via NewSweepOrdersCommand constructor",
)

// SweepOrdersCommand triggers one pass of the timeout and escalation policy
// over all in-flight orders. The periodic job runner issues it on a fixed
// interval; runs never overlap.
//
// Example:
//
//	cmd := NewSweepOrdersCommand()
//	handler := NewSweepOrdersCommandHandler(uowFactory, dispatcher, payments, policy, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("sweep pass failed: %v", err)
//	}
type SweepOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOrdersCommand creates a new command to trigger a sweep pass.
// This is a parameterless command; all thresholds live in the handler's policy.
func NewSweepOrdersCommand() SweepOrdersCommand {
	return SweepOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepOrdersCommandIsNotConstructed if validation fails.
func (c *SweepOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrdersCommandIsNotConstructed)
}
