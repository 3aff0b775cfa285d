package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvoicesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_invoices_generated_total",
		Help: "Invoices created from orders or recurring templates",
	})

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_payments_recorded_total",
			Help: "Payments applied to invoices, by method",
		},
		[]string{"method"},
	)

	PaymentAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_payment_amount_total",
		Help: "Sum of applied payment amounts",
	})

	OverdueTransitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_overdue_transitions_total",
		Help: "Invoices moved to overdue by the scanner",
	})

	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_persist_failures_total",
			Help: "Failed writes of a collection to the store",
		},
		[]string{"key"},
	)

	CorruptStateRecoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_corrupt_state_recoveries_total",
			Help: "Collections reseeded because stored JSON was unreadable",
		},
		[]string{"key"},
	)
)
