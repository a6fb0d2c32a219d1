package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	EmailsProcessed  prometheus.Counter
	TicketsParsed    *prometheus.CounterVec
	ParseErrors      *prometheus.CounterVec
	AmountMismatches prometheus.Counter
	ProcessingTime   prometheus.Histogram
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates the metrics on reg, so tests can use a private registry
func NewMetricsWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EmailsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_processed_total",
			Help:      "The total number of processed ticket emails",
		}),
		TicketsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_parsed_total",
			Help:      "The total number of parsed tickets by source format",
		}, []string{"source"}),
		ParseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "The total number of documents that parsed with errors",
		}, []string{"reason"}),
		AmountMismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_mismatches_total",
			Help:      "The total number of tickets whose fare and taxes do not add up to the total",
		}),
		ProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ticket_processing_time_seconds",
			Help:      "Time taken to parse and store a ticket",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
