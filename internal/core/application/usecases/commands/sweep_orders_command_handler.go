package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// SweepPolicy carries the timeout and escalation thresholds applied by a
// sweep pass. All values come from configuration; none are hardcoded.
type SweepPolicy struct {
	// PendingMaxAge is how long an order may sit in pending before it is
	// treated as abandoned and rejected with a refund.
	PendingMaxAge time.Duration

	// EscalationThreshold is how long a driver search runs before the
	// radius is widened and the order re-dispatched.
	EscalationThreshold time.Duration

	// HardTimeout is how long a driver search may run in total before the
	// order is rejected as no_driver_found.
	HardTimeout time.Duration

	// MaxRadiusKm caps the escalated search radius.
	MaxRadiusKm float64
}

// SweepOrdersCommandHandler applies the timeout and escalation policy to all
// in-flight orders:
//
//   - pending orders past PendingMaxAge are rejected (reason expired) with a refund
//   - searches younger than EscalationThreshold are left alone
//   - searches between EscalationThreshold and HardTimeout are re-dispatched
//     at a widened radius (doubled, capped at MaxRadiusKm)
//   - searches at or past HardTimeout are rejected (reason no_driver_found)
//     with a refund, and every still-pending request for the order expires
//
// Each order is processed in its own transaction: one failure is logged and
// the pass continues with the next order. Refunds execute before the
// rejection is committed, so a refund failure rolls the rejection back and
// the next pass retries it. Re-running over an already-terminal order is a
// no-op, which makes a partially failed pass safe to repeat.
type SweepOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher OrderDispatcher
	payments   ports.PaymentService
	policy     SweepPolicy
	logger     *slog.Logger
}

// NewSweepOrdersCommandHandler creates a handler for sweep passes.
func NewSweepOrdersCommandHandler(
	uowFactory UoWFactory,
	dispatcher OrderDispatcher,
	payments ports.PaymentService,
	policy SweepPolicy,
	logger *slog.Logger,
) SweepOrdersCommandHandler {
	return SweepOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		payments:   payments,
		policy:     policy,
		logger:     logger.With("component", "sweep_orders"),
	}
}

// Handle runs one sweep pass. Only errors that prevent the pass from reading
// the in-flight orders are returned; per-order failures are logged.
func (h SweepOrdersCommandHandler) Handle(ctx context.Context, command SweepOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := nowUTC()

	stalePending, searching, err := h.collectInFlight(ctx, now)
	if err != nil {
		return err
	}

	for _, orderID := range stalePending {
		if err := h.rejectOrder(ctx, orderID, order.RejectionExpired, now); err != nil {
			h.logger.Error("failed to expire stale pending order",
				"order_id", orderID.String(), "error", err)
		}
	}

	for _, candidate := range searching {
		switch {
		case candidate.searchDuration < h.policy.EscalationThreshold:
			// Young search, leave it alone.
		case candidate.searchDuration < h.policy.HardTimeout:
			if err := h.escalateOrder(ctx, candidate.id); err != nil {
				h.logger.Error("failed to escalate order search",
					"order_id", candidate.id.String(), "error", err)
			}
		default:
			if err := h.rejectOrder(ctx, candidate.id, order.NoDriverFound, now); err != nil {
				h.logger.Error("failed to time out order search",
					"order_id", candidate.id.String(), "error", err)
			}
		}
	}

	return nil
}

type searchCandidate struct {
	id             kernel.UUID
	searchDuration time.Duration
}

// collectInFlight reads the ids the pass will process. Only ids and elapsed
// times leave this transaction; every mutation re-reads its order inside its
// own transaction so concurrent accepts are never overwritten.
func (h SweepOrdersCommandHandler) collectInFlight(
	ctx context.Context,
	now time.Time,
) ([]kernel.UUID, []searchCandidate, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	pendingCutoff := now.Add(-h.policy.PendingMaxAge)
	stale, err := ordersRepo.GetAllStalePending(ctx, pendingCutoff)
	if err != nil {
		return nil, nil, err
	}

	stalePending := make([]kernel.UUID, 0, len(stale))
	for _, staleOrder := range stale {
		stalePending = append(stalePending, staleOrder.ID())
	}

	looking, err := ordersRepo.GetAllLookingForDriver(ctx)
	if err != nil {
		return nil, nil, err
	}

	searching := make([]searchCandidate, 0, len(looking))
	for _, searchingOrder := range looking {
		searching = append(searching, searchCandidate{
			id:             searchingOrder.ID(),
			searchDuration: searchingOrder.SearchDuration(now),
		})
	}

	return stalePending, searching, nil
}

// rejectOrder terminates one order with the given reason inside its own
// transaction: refund first, then the status flip, then expiry of any
// still-pending delivery requests. An order that already left the expected
// state (a driver accepted between read and write) is skipped silently.
func (h SweepOrdersCommandHandler) rejectOrder(
	ctx context.Context,
	orderID kernel.UUID,
	reason order.RejectionReason,
	now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	requestsRepo := uow.DeliveryRequestRepository()

	rejectedOrder, err := ordersRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if rejectedOrder.Status().IsTerminal() {
		return nil
	}

	if _, err := h.payments.Refund(ctx, orderID); err != nil {
		return err
	}

	if err := rejectedOrder.Reject(reason, now); err != nil {
		return err
	}

	if err := ordersRepo.Update(ctx, rejectedOrder); err != nil {
		return err
	}

	pending, err := requestsRepo.GetAllPendingByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, request := range pending {
		if err := request.Expire(); err != nil {
			return err
		}
		if err := requestsRepo.Update(ctx, request); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order rejected by sweep",
		"order_id", orderID.String(), "reason", reason.String())
	return nil
}

// escalateOrder widens one order's search radius inside its own transaction
// and re-dispatches at the new radius after commit.
func (h SweepOrdersCommandHandler) escalateOrder(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	escalatedOrder, err := ordersRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if escalatedOrder.Status() != order.StatusLookingForDriver {
		return nil
	}

	radius, err := escalatedOrder.EscalateSearchRadius(h.policy.MaxRadiusKm)
	if err != nil {
		return err
	}

	if err := ordersRepo.Update(ctx, escalatedOrder); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("order search radius escalated",
		"order_id", orderID.String(), "radius_km", radius)

	dispatchCommand, err := NewDispatchOrderCommand(orderID, radius)
	if err != nil {
		return err
	}

	return h.dispatcher.Handle(ctx, dispatchCommand)
}
