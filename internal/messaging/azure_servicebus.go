package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Event types published after a successful write
const (
	ClientCreated     = "client.created"
	ClientUpdated     = "client.updated"
	ClientDeleted     = "client.deleted"
	OrderCreated      = "order.created"
	OrderStatusChange = "order.status_changed"
	InvoiceCreated    = "invoice.created"
	InvoiceStatus     = "invoice.status_changed"
	OfferConverted    = "offer.converted"
	GuaranteeAccepted = "guarantee.accepted"
	GuaranteesExpired = "guarantee.expired"
)

const source = "premium-umbrella"

// Event is the envelope carried in every message body
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Handler processes one received event
type Handler func(ctx context.Context, event Event) error

// ServiceBus publishes and consumes domain events on one queue
type ServiceBus struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	queueName string
	enabled   bool
}

// NewServiceBus creates a new Azure Service Bus client. Without a connection
// string the bus is disabled and Publish is a no-op.
func NewServiceBus(cfg config.AzureConfig) (*ServiceBus, error) {
	if cfg.ConnectionString == "" {
		log.Warn().Msg("Azure Service Bus connection string not provided, events will not be published")
		return &ServiceBus{queueName: cfg.QueueName}, nil
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus client")
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus sender")
	}

	return &ServiceBus{
		client:    client,
		sender:    sender,
		queueName: cfg.QueueName,
		enabled:   true,
	}, nil
}

// Enabled reports whether the bus is connected
func (s *ServiceBus) Enabled() bool {
	return s != nil && s.enabled
}

// NewEvent wraps payload in an envelope
func NewEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errors.Wrap(err, "failed to marshal event payload")
	}
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: data}, nil
}

// Publish sends an event to the queue
func (s *ServiceBus) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if !s.Enabled() {
		return nil
	}

	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	subject := eventType
	msg := &azservicebus.Message{
		Body:    body,
		Subject: &subject,
		ApplicationProperties: map[string]interface{}{
			"source": source,
			"time":   event.OccurredAt.Format(time.RFC3339),
		},
	}

	if err := s.sender.SendMessage(ctx, msg, nil); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}

// Consume receives messages until ctx is cancelled. Messages the handler
// fails on are abandoned so the broker redelivers them.
func (s *ServiceBus) Consume(ctx context.Context, handler Handler) error {
	if !s.Enabled() {
		log.Warn().Msg("Azure Service Bus disabled, consumer not started")
		<-ctx.Done()
		return nil
	}

	receiver, err := s.client.NewReceiverForQueue(s.queueName, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create Service Bus receiver")
	}
	defer func() {
		if err := receiver.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("Error closing Service Bus receiver")
		}
	}()

	log.Info().Str("queue", s.queueName).Msg("Consuming events")

	for {
		messages, err := receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to receive messages")
		}

		for _, message := range messages {
			if err := handleMessage(ctx, message.Body, handler); err != nil {
				log.Error().Err(err).Str("message_id", message.MessageID).Msg("Error processing message")
				if err := receiver.AbandonMessage(context.Background(), message, nil); err != nil {
					log.Error().Err(err).Msg("AbandonMessage failed")
				}
				continue
			}
			if err := receiver.CompleteMessage(context.Background(), message, nil); err != nil {
				log.Error().Err(err).Msg("CompleteMessage failed")
			}
		}
	}
}

func handleMessage(ctx context.Context, body []byte, handler Handler) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("invalid event body: %w", err)
	}
	if event.Type == "" {
		return fmt.Errorf("event without type")
	}
	return handler(ctx, event)
}

// Close closes the sender and the client
func (s *ServiceBus) Close() error {
	if !s.Enabled() {
		return nil
	}
	if s.sender != nil {
		if err := s.sender.Close(context.Background()); err != nil {
			return err
		}
	}
	return s.client.Close(context.Background())
}
