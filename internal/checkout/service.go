package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"storefront-service/internal/cart"
	"storefront-service/internal/clients"
	"storefront-service/internal/events"
	"storefront-service/internal/models"
)

var (
	// ErrEmptyCart blocks checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmission wraps a failed handoff to the email endpoint. The cart
	// is left intact so the shopper can retry.
	ErrSubmission = errors.New("order submission failed")
)

// ValidationError names the first missing required checkout field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Service derives order snapshots from the cart and drives the checkout
// handoff: validate, mint an order id, submit, and only then clear the cart.
type Service struct {
	cart      *cart.Store
	mail      clients.MailClient
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewService(cartStore *cart.Store, mail clients.MailClient, publisher *events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		cart:      cartStore,
		mail:      mail,
		publisher: publisher,
		logger:    logger.WithField("component", "checkout"),
	}
}

// Snapshot computes the read-only order summary from the current cart.
func (s *Service) Snapshot() models.OrderSnapshot {
	lines := s.cart.Lines()

	items := make([]models.OrderItem, 0, len(lines))
	count := 0
	var subtotal float64
	for _, line := range lines {
		lineTotal := cart.Round2(line.PriceSnapshot * float64(line.Quantity))
		items = append(items, models.OrderItem{
			ID:        line.ProductID,
			Title:     line.TitleSnapshot,
			Price:     line.PriceSnapshot,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		count += line.Quantity
		subtotal += line.PriceSnapshot * float64(line.Quantity)
	}

	tax := cart.Round2(subtotal * s.cart.TaxRate())
	return models.OrderSnapshot{
		Items:     items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     cart.Round2(subtotal + tax),
		ItemCount: count,
	}
}

// PlaceOrder validates the customer, submits the order and clears the cart
// on success. On any failure the cart is untouched and no order id is
// considered placed.
func (s *Service) PlaceOrder(ctx context.Context, customer models.CustomerInfo) (string, models.OrderSnapshot, error) {
	if err := validateCustomer(customer); err != nil {
		return "", models.OrderSnapshot{}, err
	}

	snapshot := s.Snapshot()
	if snapshot.ItemCount == 0 {
		return "", models.OrderSnapshot{}, ErrEmptyCart
	}

	orderID := newOrderID()
	submission := &clients.OrderSubmission{
		OrderID:  orderID,
		Name:     customer.Name,
		Email:    customer.Email,
		Address1: customer.Address1,
		Address2: customer.Address2,
		City:     customer.City,
		State:    customer.State,
		Zip:      customer.Zip,
		Notes:    customer.Notes,
		Items:    snapshot.Items,
		Subtotal: snapshot.Subtotal,
		Tax:      snapshot.Tax,
		Total:    snapshot.Total,
		Message:  orderAsText(orderID, customer, snapshot),
	}

	if err := s.mail.SubmitOrder(ctx, submission); err != nil {
		s.logger.WithError(err).WithField("orderId", orderID).Error("Order submission failed")
		return "", models.OrderSnapshot{}, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	s.cart.Clear(ctx)
	s.publisher.PublishOrderPlaced(orderID, snapshot)
	s.logger.WithFields(logrus.Fields{
		"orderId": orderID,
		"items":   snapshot.ItemCount,
		"total":   snapshot.Total,
	}).Info("Order placed")

	return orderID, snapshot, nil
}

func validateCustomer(c models.CustomerInfo) error {
	required := []struct {
		field, value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"address1", c.Address1},
		{"city", c.City},
		{"state", c.State},
		{"zip", c.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field}
		}
	}
	return nil
}

func newOrderID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + id[:8]
}

// orderAsText renders the human-readable order message included alongside
// the machine-readable payload.
func orderAsText(orderID string, c models.CustomerInfo, snap models.OrderSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order: %s\n", orderID)
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	address := c.Address1
	if c.Address2 != "" {
		address += ", " + c.Address2
	}
	fmt.Fprintf(&b, "Address: %s, %s, %s %s\n", address, c.City, c.State, c.Zip)
	notes := c.Notes
	if notes == "" {
		notes = "-"
	}
	fmt.Fprintf(&b, "Notes: %s\n\n", notes)

	fmt.Fprintf(&b, "Items (%d):\n", snap.ItemCount)
	for _, item := range snap.Items {
		fmt.Fprintf(&b, "- %s x%d — $%.2f\n", item.Title, item.Quantity, item.LineTotal)
	}

	fmt.Fprintf(&b, "\nSubtotal: $%.2f\n", snap.Subtotal)
	fmt.Fprintf(&b, "Tax: $%.2f\n", snap.Tax)
	b.WriteString("Shipping: Free\n")
	fmt.Fprintf(&b, "Total: $%.2f", snap.Total)

	return b.String()
}
