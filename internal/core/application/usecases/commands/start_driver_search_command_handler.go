package commands

import (
	"context"
)

// OrderDispatcher abstracts the follow-up dispatch so the search start can be
// tested without the full dispatch pipeline.
type OrderDispatcher interface {
	Handle(ctx context.Context, command DispatchOrderCommand) error
}

// StartDriverSearchCommandHandler confirms an order and kicks off its driver search.
//
// The status transition commits first; the initial dispatch of delivery
// requests runs as a separate transaction afterwards. If the dispatch fails,
// the order stays in looking_for_driver and the sweeper re-dispatches it on
// its next pass.
type StartDriverSearchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher OrderDispatcher
}

// NewStartDriverSearchCommandHandler creates a handler for starting driver searches.
func NewStartDriverSearchCommandHandler(
	uowFactory UoWFactory,
	dispatcher OrderDispatcher,
) StartDriverSearchCommandHandler {
	return StartDriverSearchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the start search command.
// Moves the order from pending to looking_for_driver at the initial radius,
// then dispatches delivery requests to nearby drivers.
func (h StartDriverSearchCommandHandler) Handle(ctx context.Context, command StartDriverSearchCommand) error {
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

	searchedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	now := nowUTC()
	if err := searchedOrder.StartDriverSearch(command.InitialRadiusKm(), now); err != nil {
		return err
	}

	if err := ordersRepo.Update(ctx, searchedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	dispatchCommand, err := NewDispatchOrderCommand(command.OrderID(), command.InitialRadiusKm())
	if err != nil {
		return err
	}

	return h.dispatcher.Handle(ctx, dispatchCommand)
}
