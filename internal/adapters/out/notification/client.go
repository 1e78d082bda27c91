// Package notification provides the HTTP client for the external notification
// service. Notifications are best-effort: callers treat failures as
// non-fatal and the dispatch workflow never blocks on them.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.NotificationService over the notification
// service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a notification client for the given base URL.
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

// driverNotificationRequest is the wire format for new-offer pushes.
type driverNotificationRequest struct {
	DriverIDs []string `json:"driver_ids"`
}

// customerNotificationRequest is the wire format for order status pushes.
type customerNotificationRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// NotifyDriversOfNewRequest pushes a new-offer notification to the given drivers.
func (c *Client) NotifyDriversOfNewRequest(ctx context.Context, driverIDs []kernel.UUID) error {
	if len(driverIDs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(driverIDs))
	for _, id := range driverIDs {
		ids = append(ids, id.String())
	}

	return c.post(ctx, "/notifications/drivers", driverNotificationRequest{DriverIDs: ids})
}

// NotifyCustomerOfStatusChange pushes an order status change to the customer.
func (c *Client) NotifyCustomerOfStatusChange(
	ctx context.Context,
	orderID kernel.UUID,
	status order.Status,
) error {
	return c.post(ctx, "/notifications/customers", customerNotificationRequest{
		OrderID: orderID.String(),
		Status:  status.String(),
	})
}

// post sends one JSON request and treats any non-2xx response as an error.
func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}
