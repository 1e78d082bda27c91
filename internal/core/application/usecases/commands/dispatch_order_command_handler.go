package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/deliveryrequest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrOrderNotLookingForDriver is returned when dispatching an order that is not
// in the looking_for_driver status. Callers receive it wrapped with the order id.
var ErrOrderNotLookingForDriver = errors.New("order isn't looking for drivers")

// DispatchOrderCommandHandler creates pending delivery requests for every
// available driver near the order's venue.
//
// The handler selects candidates through the ProximityFinder, snapshots each
// driver's location into the request, and persists all offers in a single
// transaction. Drivers who already hold a request for the order never receive
// a second one, so re-dispatching (after escalation or a partial failure) only
// adds offers for new candidates. Driver notification happens after commit and
// is best-effort.
type DispatchOrderCommandHandler struct {
	uowFactory      UoWFactory
	proximityFinder services.ProximityFinder
	notifier        ports.NotificationService
	logger          *slog.Logger
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch operations.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	logger *slog.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:      uowFactory,
		proximityFinder: services.NewProximityFinder(),
		notifier:        notifier,
		logger:          logger.With("component", "dispatch_order"),
	}
}

// Handle processes the dispatch command.
//
// Finds available drivers within the command radius, creates one pending
// delivery request per driver with a location snapshot, and commits them
// atomically. Returns ErrOrderNotLookingForDriver (wrapped with the order id)
// when the order is not searching. Finding no drivers is a successful no-op;
// the sweeper escalates the radius later.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, command DispatchOrderCommand) error {
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

	dispatchedOrder, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if dispatchedOrder.Status() != order.StatusLookingForDriver {
		return fmt.Errorf("order %s: %w", dispatchedOrder.ID().String(), ErrOrderNotLookingForDriver)
	}

	candidates, err := driversRepo.GetAllAvailableExcluding(ctx, dispatchedOrder.ID())
	if err != nil {
		return err
	}

	matched, err := h.proximityFinder.FindAvailableDrivers(
		dispatchedOrder.VenueLocation(), command.RadiusKm(), candidates)
	if err != nil {
		return err
	}

	now := nowUTC()
	notifiedDriverIDs := make([]kernel.UUID, 0, len(matched))
	for _, candidate := range matched {
		request, err := deliveryrequest.NewDeliveryRequest(
			kernel.NewUUID(),
			dispatchedOrder.ID(),
			candidate.Driver.ID(),
			*candidate.Driver.LastKnownLocation(),
			now,
		)
		if err != nil {
			return err
		}

		if err := requestsRepo.Add(ctx, request); err != nil {
			// The unique (driver, order) index backstops the candidate
			// pre-filter under concurrent dispatches.
			if errors.Is(err, ports.ErrDuplicateDeliveryRequest) {
				continue
			}
			return err
		}

		notifiedDriverIDs = append(notifiedDriverIDs, candidate.Driver.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if len(notifiedDriverIDs) > 0 {
		if err := h.notifier.NotifyDriversOfNewRequest(ctx, notifiedDriverIDs); err != nil {
			h.logger.Warn("driver notification failed",
				"order_id", dispatchedOrder.ID().String(), "error", err)
		}
	}

	return nil
}
