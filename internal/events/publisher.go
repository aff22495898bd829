package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/BauthyBa/bautigatica/internal/models"
)

// Event types published on NATS subjects of the same name.
const (
	ProductCreated   = "product.created"
	ProductUpdated   = "product.updated"
	ProductDeleted   = "product.deleted"
	PurchaseRecorded = "purchase.recorded"
	PurchaseDeleted  = "purchase.deleted"
)

// Event is the envelope published for every store event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Publisher publishes store events to NATS. A nil Publisher is valid and
// drops every event, so the service runs without a broker configured.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and returns a publisher.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("bautigatica"),
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
		p.logger.WithError(err).Warn("Failed to drain NATS connection")
	}
}

func (p *Publisher) publish(eventType string, data interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("event_type", eventType).Error("Failed to marshal event")
		return
	}

	if err := p.conn.Publish(eventType, payload); err != nil {
		p.logger.WithError(err).WithField("event_type", eventType).Error("Failed to publish event")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"event_type": eventType,
		"event_id":   event.ID,
	}).Debug("Published event")
}

// PublishProductCreated publishes a product.created event.
func (p *Publisher) PublishProductCreated(product *models.Product) {
	p.publish(ProductCreated, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Publisher) PublishProductUpdated(product *models.Product) {
	p.publish(ProductUpdated, product)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Publisher) PublishProductDeleted(productID string) {
	p.publish(ProductDeleted, map[string]string{"id": productID})
}

// PublishPurchaseRecorded publishes a purchase.recorded event.
func (p *Publisher) PublishPurchaseRecorded(purchase *models.Purchase) {
	p.publish(PurchaseRecorded, purchase)
}

// PublishPurchaseDeleted publishes a purchase.deleted event.
func (p *Publisher) PublishPurchaseDeleted(purchaseID string) {
	p.publish(PurchaseDeleted, map[string]string{"id": purchaseID})
}
