package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// RefundConfirmation is the payment provider's acknowledgment of a refund.
type RefundConfirmation struct {
	// RefundID is the provider-side identifier of the refund transaction
	RefundID string
	// OrderID is the order the refund applies to
	OrderID kernel.UUID
}

// PaymentService is the outbound contract to the payment provider.
// Refunds must succeed before an order rejection is committed; a refund
// failure aborts the rejection so the sweeper retries on its next pass.
type PaymentService interface {
	// Refund returns the customer's money for a rejected order.
	Refund(ctx context.Context, orderID kernel.UUID) (RefundConfirmation, error)
}
