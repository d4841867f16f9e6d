// Package queue_publisher provides functions to publish domain events
// to RabbitMQ. Errors are logged and returned so callers can ignore
// broker failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/train-seat-reservation/internal/queue"
)

// PublishSeatsReserved publishes a SeatsReservedEvent to the durable
// seats.reserved queue. Best effort: any error is logged and returned
// so the booking response is never blocked on the broker. Messages are
// marked persistent.
func PublishSeatsReserved(ctx context.Context, event q.SeatsReservedEvent) error {
	event.Type = q.EventTypeSeatsReserved
	return publish(ctx, q.ReservedQueueName, event)
}

// PublishBookingsReset publishes a BookingsResetEvent on the same
// queue so log consumers observe resets in order with reservations.
func PublishBookingsReset(ctx context.Context, event q.BookingsResetEvent) error {
	event.Type = q.EventTypeBookingsReset
	return publish(ctx, q.ReservedQueueName, event)
}

func publish(ctx context.Context, queueName string, event interface{}) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
