package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// RejectDeliveryRequestCommandHandler resolves a driver's decline of a
// delivery request. Only the addressed driver may decline, and only while the
// request is still pending; resolved requests return a validation error.
type RejectDeliveryRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewRejectDeliveryRequestCommandHandler creates a handler for request declines.
func NewRejectDeliveryRequestCommandHandler(uowFactory RequestUoWFactory) RejectDeliveryRequestCommandHandler {
	return RejectDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the decline command.
// Returns errs.ErrObjectNotFound when the request does not exist or is not
// addressed to the acting driver.
func (h RejectDeliveryRequestCommandHandler) Handle(ctx context.Context, command RejectDeliveryRequestCommand) error {
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

	requestsRepo := uow.DeliveryRequestRepository()

	request, err := requestsRepo.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if !request.IsAddressedTo(command.DriverID()) {
		return errs.NewObjectNotFoundError("delivery request", command.RequestID())
	}

	if err := request.Reject(nowUTC()); err != nil {
		return err
	}

	if err := requestsRepo.Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
