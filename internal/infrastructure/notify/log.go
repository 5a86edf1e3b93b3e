package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/infrastructure/queue"
)

// LogNotifier is the fallback sink when no broker is configured: booking
// events are recorded in the structured log and nothing else happens.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify satisfies queue.Notifier.
func (n *LogNotifier) Notify(_ context.Context, e queue.Event) error {
	n.log.Info().
		Str("event", e.Kind).
		Str("booking_id", e.Booking.ID).
		Str("property_id", e.Booking.PropertyID).
		Str("status", string(e.Booking.Status)).
		Msg("booking event")
	return nil
}
