package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"katalog/internal/models"
)

// ExchangeName is the fanout exchange every catalog instance publishes product events to.
const ExchangeName = "catalog.events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	source   string

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Exchange defaults to ExchangeName.
	Exchange string
	// Source identifies this instance in published events.
	Source string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the events exchange.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = ExchangeName
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"fanout",     // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Printf("RabbitMQ client connected and exchange %s declared.", cfg.Exchange)

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		source:   cfg.Source,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish sends body to the events exchange as a persistent JSON message.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key, ignored by fanout but kept for consumers
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// PublishProductEvent publishes event with its type as routing key.
func (c *Client) PublishProductEvent(_ context.Context, event models.ProductEvent) error {
	if event.Source == "" {
		event.Source = c.source
	}
	body, err := EncodeProductEvent(event)
	if err != nil {
		return err
	}
	if err := c.Publish(event.Type, body); err != nil {
		return err
	}
	log.Printf(" [x] Sent %s event for product %d", event.Type, event.ProductID)
	return nil
}

// ConsumeProductEvents binds an exclusive, server-named queue to the events
// exchange and hands every decoded event to handler in a goroutine.
// Messages that cannot be decoded are dropped; handler errors requeue the message.
func (c *Client) ConsumeProductEvents(handler func(models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		"",    // name: let the server pick one per instance
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}
	if err := c.channel.QueueBind(queue.Name, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack: set to false to manually acknowledge messages
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for product events on %s", queue.Name)

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()

	return nil
}

// acknowledger is the part of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(msg amqp.Delivery, handler func(models.ProductEvent) error) {
	settle(&msg, msg.DeliveryTag, msg.Body, handler)
}

func settle(ack acknowledger, tag uint64, body []byte, handler func(models.ProductEvent) error) {
	event, err := DecodeProductEvent(body)
	if err != nil {
		log.Printf("Dropping malformed message %d: %v", tag, err)
		if nackErr := ack.Nack(false, false); nackErr != nil {
			log.Printf("Error nacking message %d: %v", tag, nackErr)
		}
		return
	}

	if err := handler(event); err != nil {
		log.Printf("Error processing message %d: %v", tag, err)
		// Requeue so another attempt can be made.
		if nackErr := ack.Nack(false, true); nackErr != nil {
			log.Printf("Error nacking message %d: %v", tag, nackErr)
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		log.Printf("Error acking message %d: %v", tag, ackErr)
	}
}

// EncodeProductEvent marshals event to JSON.
func EncodeProductEvent(event models.ProductEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product event: %w", err)
	}
	return body, nil
}

// DecodeProductEvent parses a message body. Events without a type are rejected.
func DecodeProductEvent(body []byte) (models.ProductEvent, error) {
	var event models.ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return models.ProductEvent{}, fmt.Errorf("failed to unmarshal product event: %w", err)
	}
	if event.Type == "" {
		return models.ProductEvent{}, fmt.Errorf("product event has no type")
	}
	return event, nil
}
