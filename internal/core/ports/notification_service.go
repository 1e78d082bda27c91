package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// NotificationService is the outbound contract to the notification gateway.
// Notifications are best-effort: callers log failures and never let them
// affect the outcome of the triggering operation.
type NotificationService interface {
	// NotifyDriversOfNewRequest tells the given drivers a new delivery
	// request is waiting for them.
	NotifyDriversOfNewRequest(ctx context.Context, driverIDs []kernel.UUID) error

	// NotifyCustomerOfStatusChange tells the order's customer the order
	// reached a new status.
	NotifyCustomerOfStatusChange(ctx context.Context, orderID kernel.UUID, status order.Status) error
}
