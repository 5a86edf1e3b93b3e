package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Event is a booking lifecycle notification handed off the request path.
type Event struct {
	Kind    string
	Booking *domain.Booking
}

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Notifier delivers a single event to the outside world (message broker,
// log, ...).
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Dispatcher fans booking events out to a fixed set of workers, sharded by
// property id so events for one property are delivered in order.
type Dispatcher struct {
	workers  []chan Event
	notifier Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
func NewDispatcher(numWorkers int, notifier Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan Event, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Event, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines; they stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// BookingConfirmed satisfies service.BookingEvents. Never blocks beyond the
// channel buffer.
func (d *Dispatcher) BookingConfirmed(b *domain.Booking) {
	d.enqueue(Event{Kind: EventBookingConfirmed, Booking: b})
}

// BookingCancelled satisfies service.BookingEvents.
func (d *Dispatcher) BookingCancelled(b *domain.Booking) {
	d.enqueue(Event{Kind: EventBookingCancelled, Booking: b})
}

func (d *Dispatcher) enqueue(e Event) {
	d.workers[d.shardIndex(e.Booking.PropertyID)] <- e
}

// shardIndex maps a property id deterministically to a worker.
func (d *Dispatcher) shardIndex(propertyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(propertyID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.Notify(ctx, e); err != nil {
				d.log.Error().Err(err).
					Str("event", e.Kind).
					Str("booking_id", e.Booking.ID).
					Int("worker_id", id).
					Msg("booking notification failed")
			}
		}
	}
}
