package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"storefront-service/internal/models"
)

// Subjects published by the storefront.
const (
	SubjectOrderPlaced     = "storefront.order.placed"
	SubjectCatalogImported = "storefront.catalog.imported"
)

// Publisher emits storefront audit events over NATS. It is optional: the
// service runs without it when NATS_URL is unset or the connect fails.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to the given NATS URL.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events"),
	}, nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// OrderPlacedEvent is the payload of storefront.order.placed.
type OrderPlacedEvent struct {
	OrderID   string             `json:"orderId"`
	ItemCount int                `json:"itemCount"`
	Subtotal  float64            `json:"subtotal"`
	Tax       float64            `json:"tax"`
	Total     float64            `json:"total"`
	Items     []models.OrderItem `json:"items"`
	Timestamp time.Time          `json:"timestamp"`
}

// CatalogImportedEvent is the payload of storefront.catalog.imported.
type CatalogImportedEvent struct {
	ProductCount int       `json:"productCount"`
	Source       string    `json:"source"`
	Timestamp    time.Time `json:"timestamp"`
}

// PublishOrderPlaced emits an order.placed event. Failures are logged and
// swallowed: the order already went out, audit events are best effort.
func (p *Publisher) PublishOrderPlaced(orderID string, snapshot models.OrderSnapshot) {
	if p == nil {
		return
	}
	p.publish(SubjectOrderPlaced, OrderPlacedEvent{
		OrderID:   orderID,
		ItemCount: snapshot.ItemCount,
		Subtotal:  snapshot.Subtotal,
		Tax:       snapshot.Tax,
		Total:     snapshot.Total,
		Items:     snapshot.Items,
		Timestamp: time.Now().UTC(),
	})
}

// PublishCatalogImported emits a catalog.imported event.
func (p *Publisher) PublishCatalogImported(productCount int, source string) {
	if p == nil {
		return
	}
	p.publish(SubjectCatalogImported, CatalogImportedEvent{
		ProductCount: productCount,
		Source:       source,
		Timestamp:    time.Now().UTC(),
	})
}

func (p *Publisher) publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
		return
	}
	p.logger.WithField("subject", subject).Debug("Event published")
}
