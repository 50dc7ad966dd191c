package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-service/internal/models"
)

// MailClient hands a completed order off to the external email-submission
// endpoint (a formsubmit-style collaborator). Success and failure are
// signaled by HTTP status only; no retry is attempted here.
type MailClient interface {
	// SubmitOrder posts the order payload. A nil error means the endpoint
	// accepted the order.
	SubmitOrder(ctx context.Context, submission *OrderSubmission) error
}

// mailClient implements MailClient.
type mailClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewMailClient creates a client for the given submission endpoint.
func NewMailClient(endpoint string) MailClient {
	return &mailClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// OrderSubmission is the request contract of the email endpoint: the order
// id, the customer fields flattened alongside it, the machine-readable item
// list and totals, and a human-readable fallback message.
type OrderSubmission struct {
	OrderID  string             `json:"orderId"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Address1 string             `json:"address1"`
	Address2 string             `json:"address2,omitempty"`
	City     string             `json:"city"`
	State    string             `json:"state"`
	Zip      string             `json:"zip"`
	Notes    string             `json:"notes,omitempty"`
	Items    []models.OrderItem `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Tax      float64            `json:"tax"`
	Total    float64            `json:"total"`
	Message  string             `json:"message"`
}

func (c *mailClient) SubmitOrder(ctx context.Context, submission *OrderSubmission) error {
	if c.endpoint == "" {
		return fmt.Errorf("order endpoint is not configured")
	}

	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal order submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the log line, the status is what
		// decides the outcome.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("order submission returned HTTP %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
