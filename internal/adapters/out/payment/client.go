// Package payment provides the HTTP client for the external payment service.
// Unlike notifications, refunds are on the critical path: an order is only
// rejected once its refund is confirmed.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.PaymentService over the payment service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment client for the given base URL.
// A non-positive timeout falls back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// refundRequest is the wire format for refund calls.
type refundRequest struct {
	OrderID string `json:"order_id"`
}

// refundResponse is the payment service's refund confirmation.
type refundResponse struct {
	RefundID string `json:"refund_id"`
}

// Refund requests a full refund for the order and returns the confirmation.
// Any transport error or non-2xx response fails the refund; the caller must
// not reject the order in that case.
func (c *Client) Refund(ctx context.Context, orderID kernel.UUID) (ports.RefundConfirmation, error) {
	body, err := json.Marshal(refundRequest{OrderID: orderID.String()})
	if err != nil {
		return ports.RefundConfirmation{}, fmt.Errorf("failed to encode refund payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return ports.RefundConfirmation{}, fmt.Errorf("failed to build refund request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.RefundConfirmation{}, fmt.Errorf("refund request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.RefundConfirmation{}, fmt.Errorf("payment service returned status %d", resp.StatusCode)
	}

	var confirmation refundResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return ports.RefundConfirmation{}, fmt.Errorf("failed to decode refund confirmation: %w", err)
	}

	if confirmation.RefundID == "" {
		return ports.RefundConfirmation{}, fmt.Errorf("payment service confirmed refund without a refund id")
	}

	return ports.RefundConfirmation{
		RefundID: confirmation.RefundID,
		OrderID:  orderID,
	}, nil
}
