// Package metrics is the single source of truth for the rental API's custom
// Prometheus metric names, labels and help strings. Metrics register with
// the default registry at package initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// PropertiesCreatedTotal counts new listings.
var PropertiesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created.",
	},
)

// BookingsCreatedTotal counts confirmed reservations.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings confirmed.",
	},
)

// BookingConflictsTotal counts reservation attempts rejected because the
// requested dates were unavailable, including losers of a concurrent race.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking attempts rejected with a date conflict.",
	},
)

// BookingsCancelledTotal counts cancellations by either party.
var BookingsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Total number of bookings cancelled.",
	},
)

// AvailabilityRequestsTotal counts calendar lookups on the public
// availability endpoint.
var AvailabilityRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_requests_total",
		Help:      "Total number of availability calendar lookups.",
	},
)
