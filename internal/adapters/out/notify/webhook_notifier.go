package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// WebhookNotifier POSTs each lifecycle event as JSON to a configured URL,
// the integration point for external displays and customer-facing apps.
type WebhookNotifier struct {
	name   string
	url    string
	client *http.Client
}

// webhookPayload is the wire shape of a delivered event.
type webhookPayload struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	TableNumber int       `json:"table_number"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewWebhookNotifier creates a notifier delivering to url. The client may
// be nil, in which case a client with a 10 second timeout is used.
func NewWebhookNotifier(name, url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{name: name, url: url, client: client}
}

// Name identifies the notifier in subscription management.
func (n *WebhookNotifier) Name() string { return n.name }

// Notify delivers the event. Any status code outside 2xx is an error so
// the dispatcher logs the failed delivery.
func (n *WebhookNotifier) Notify(ctx context.Context, event order.Event) error {
	payload := webhookPayload{
		Event:       event.Type.String(),
		OrderID:     event.OrderID.String(),
		TableNumber: event.TableNumber,
		Status:      event.Status.String(),
		Version:     event.Version,
		Reason:      event.Reason,
		OccurredAt:  event.OccurredAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook %s returned status %d", n.url, resp.StatusCode)
	}
	return nil
}
