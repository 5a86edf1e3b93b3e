// Package notify carries booking events out of the process: to RabbitMQ
// when a broker is configured, to the log otherwise.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/alquileresmvp/rental-system/internal/infrastructure/queue"
)

const exchangeName = "rental.bookings"

// AMQPNotifier publishes booking events to a topic exchange. Routing key is
// the event kind (booking.confirmed / booking.cancelled).
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPNotifier dials the broker and declares the exchange.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &AMQPNotifier{conn: conn, channel: ch}, nil
}

type bookingMessage struct {
	Event      string    `json:"event"`
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id"`
	GuestID    string    `json:"guest_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
}

// Notify satisfies queue.Notifier.
func (n *AMQPNotifier) Notify(_ context.Context, e queue.Event) error {
	body, err := json.Marshal(bookingMessage{
		Event:      e.Kind,
		BookingID:  e.Booking.ID,
		PropertyID: e.Booking.PropertyID,
		GuestID:    e.Booking.GuestID,
		CheckIn:    e.Booking.CheckIn,
		CheckOut:   e.Booking.CheckOut,
		TotalPrice: e.Booking.TotalPrice,
		Status:     string(e.Booking.Status),
	})
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	return n.channel.Publish(exchangeName, e.Kind, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() error {
	_ = n.channel.Close()
	return n.conn.Close()
}
