package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsIngested prometheus.Counter
	TransactionsApplied  *prometheus.CounterVec
	TransactionsIgnored  *prometheus.CounterVec
	TransactionErrors    *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter
	OpenDisputes    prometheus.Gauge

	// Pipeline metrics
	QueueDepth  prometheus.Gauge
	RunDuration prometheus.Histogram
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		TransactionsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_engine_transactions_ingested_total",
			Help: "Total number of transactions decoded from the input feed",
		}),
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_engine_transactions_applied_total",
				Help: "Total number of transactions that changed account state, by kind",
			},
			[]string{"kind"},
		),
		TransactionsIgnored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_engine_transactions_ignored_total",
				Help: "Total number of transactions rejected by a business rule",
			},
			[]string{"kind", "reason"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_engine_transaction_errors_total",
				Help: "Total number of malformed transactions by type",
			},
			[]string{"error_type"},
		),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_engine_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_engine_accounts_locked_total",
			Help: "Total number of accounts locked by a chargeback",
		}),
		OpenDisputes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payments_engine_open_disputes",
			Help: "Current number of disputes awaiting resolve or chargeback",
		}),

		// Pipeline metrics
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payments_engine_queue_depth",
			Help: "Transactions buffered between ingest and dispatch",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payments_engine_run_duration_seconds",
			Help:    "Duration of a full ingest and dispatch run",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
