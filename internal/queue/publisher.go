package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	bookingStatusQueue   = "booking.status"
	payoutProcessedQueue = "payout.processed"
)

// AMQPPublisher publishes events to RabbitMQ. Each publish dials a short-
// lived connection; errors are logged and returned so callers can ignore
// them without interrupting the request flow.
type AMQPPublisher struct {
	url string
}

// Ensure AMQPPublisher implements Publisher.
var _ Publisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher creates a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishBookingStatus publishes a booking status change.
func (p *AMQPPublisher) PublishBookingStatus(ctx context.Context, event BookingStatusEvent) error {
	return p.publish(ctx, bookingStatusQueue, event)
}

// PublishPayoutProcessed publishes a settled payout.
func (p *AMQPPublisher) PublishPayoutProcessed(ctx context.Context, event PayoutProcessedEvent) error {
	return p.publish(ctx, payoutProcessedQueue, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("amqp: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("amqp: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Declare is idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("amqp: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("amqp: publish failed: %v", err)
		return err
	}
	return nil
}
