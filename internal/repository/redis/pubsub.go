package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// PubSub channels
const (
	ChannelPaymentsCompleted = "payments:completed"
)

// PubSub provides Redis pub/sub functionality
type PubSub struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPubSub creates a new Redis pub/sub client
func NewPubSub(client *redis.Client, logger *slog.Logger) *PubSub {
	return &PubSub{
		client: client,
		logger: logger,
	}
}

// Publish publishes a message to a channel
func (p *PubSub) Publish(ctx context.Context, channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("published message", "channel", channel)
	return nil
}

// Subscribe subscribes to a channel and returns a channel for receiving messages
func (p *PubSub) Subscribe(ctx context.Context, channels ...string) *Subscription {
	pubsub := p.client.Subscribe(ctx, channels...)
	return &Subscription{
		pubsub: pubsub,
		logger: p.logger,
	}
}

// Subscription represents a subscription to Redis channels
type Subscription struct {
	pubsub *redis.PubSub
	logger *slog.Logger
}

// Channel returns the message channel
func (s *Subscription) Channel() <-chan *redis.Message {
	return s.pubsub.Channel()
}

// Close closes the subscription
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// PaymentEvent represents a completed payment for pub/sub
type PaymentEvent struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	PaidAt string `json:"paid_at"`
}

// NewPaymentEvent creates a payment-completed event
func NewPaymentEvent(id, billID, name, amount, paidAt string) *PaymentEvent {
	return &PaymentEvent{
		Type:   "payment_completed",
		ID:     id,
		BillID: billID,
		Name:   name,
		Amount: amount,
		PaidAt: paidAt,
	}
}

// PublishPaymentEvent publishes a payment-completed event
func (p *PubSub) PublishPaymentEvent(ctx context.Context, event *PaymentEvent) error {
	return p.Publish(ctx, ChannelPaymentsCompleted, event)
}

// ParsePaymentEvent parses a payment event from JSON
func ParsePaymentEvent(data []byte) (*PaymentEvent, error) {
	var event PaymentEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse payment event: %w", err)
	}
	return &event, nil
}

// SubscribePayments subscribes to payment events with a callback
func (p *PubSub) SubscribePayments(ctx context.Context, callback func(*PaymentEvent)) error {
	sub := p.Subscribe(ctx, ChannelPaymentsCompleted)

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-sub.Channel():
				if msg == nil {
					return
				}
				event, err := ParsePaymentEvent([]byte(msg.Payload))
				if err != nil {
					p.logger.Error("failed to parse payment event", "error", err)
					continue
				}
				callback(event)
			}
		}
	}()

	return nil
}
