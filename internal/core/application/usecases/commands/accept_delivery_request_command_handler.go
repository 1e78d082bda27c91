package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrRequestNoLongerAvailable is returned when a driver accepts a request for
// an order that another driver already took. The losing driver's request is
// marked missed by the winning transaction.
var ErrRequestNoLongerAvailable = errors.New("delivery request is no longer available")

// AcceptDeliveryRequestCommandHandler resolves a driver's acceptance of a
// delivery request.
//
// Concurrency contract: when two drivers accept requests for the same order
// at the same time, exactly one acceptance succeeds. Arbitration happens at
// the order row - AcceptIfLookingForDriver only writes if the order is still
// searching - so the winner is decided by the database, not by handler timing.
// The losing handler rolls back untouched and returns
// ErrRequestNoLongerAvailable.
//
// On success, in one transaction: the request becomes accepted, the order is
// assigned to the driver, the driver's current request is set, and every
// other pending request for the order is marked missed. The customer
// notification goes out after commit, best-effort.
type AcceptDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	logger     *slog.Logger
}

// NewAcceptDeliveryRequestCommandHandler creates a handler for request acceptance.
func NewAcceptDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	logger *slog.Logger,
) AcceptDeliveryRequestCommandHandler {
	return AcceptDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "accept_delivery_request"),
	}
}

// Handle processes the acceptance command.
//
// Returns errs.ErrObjectNotFound when the request does not exist or is not
// addressed to the acting driver, a validation error when the request already
// resolved, and ErrRequestNoLongerAvailable when another driver won the order.
func (h AcceptDeliveryRequestCommandHandler) Handle(ctx context.Context, command AcceptDeliveryRequestCommand) error {
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
	requestsRepo := uow.DeliveryRequestRepository()

	request, err := requestsRepo.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	// Requests addressed to other drivers are invisible to the caller.
	if !request.IsAddressedTo(command.DriverID()) {
		return errs.NewObjectNotFoundError("delivery request", command.RequestID())
	}

	now := nowUTC()
	if err := request.Accept(now); err != nil {
		return err
	}

	acceptedOrder, err := ordersRepo.Get(ctx, request.OrderID())
	if err != nil {
		return err
	}

	if err := acceptedOrder.AcceptBy(command.DriverID(), now); err != nil {
		return ErrRequestNoLongerAvailable
	}

	if err := ordersRepo.AcceptIfLookingForDriver(ctx, acceptedOrder); err != nil {
		if errors.Is(err, ports.ErrOrderAlreadyTaken) {
			return ErrRequestNoLongerAvailable
		}
		return err
	}

	acceptingDriver, err := driversRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err := acceptingDriver.AssignCurrentRequest(request.ID()); err != nil {
		return err
	}

	if err := driversRepo.Update(ctx, acceptingDriver); err != nil {
		return err
	}

	siblings, err := requestsRepo.GetAllPendingByOrder(ctx, request.OrderID())
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.IsEqual(request) {
			continue
		}
		if err := sibling.Miss(); err != nil {
			return err
		}
		if err := requestsRepo.Update(ctx, sibling); err != nil {
			return err
		}
	}

	if err := requestsRepo.Update(ctx, request); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if err := h.notifier.NotifyCustomerOfStatusChange(ctx, acceptedOrder.ID(), acceptedOrder.Status()); err != nil {
		h.logger.Warn("customer notification failed",
			"order_id", acceptedOrder.ID().String(), "error", err)
	}

	return nil
}
