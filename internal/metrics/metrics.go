package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FlowsTotal counts finished savings flows by kind and outcome
	FlowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_flows_total",
			Help: "Total number of savings flows by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// FlowFailures counts failed flows by classified error kind
	FlowFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_flow_failures_total",
			Help: "Total number of failed savings flows by error kind",
		},
		[]string{"kind", "error_kind"},
	)

	// PhaseDuration tracks how long each flow phase takes
	PhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitsave_flow_phase_duration_seconds",
			Help:    "Flow phase duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"kind", "phase"},
	)

	// ActiveFlows tracks flows currently running
	ActiveFlows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitsave_active_flows",
			Help: "Number of savings flows currently running",
		},
		[]string{"kind"},
	)

	// LocatorProbes counts vault holder probes per chain and result
	LocatorProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_locator_probes_total",
			Help: "Total number of vault holder probes",
		},
		[]string{"chain", "result"},
	)

	// LocatorCache counts holder cache hits and misses
	LocatorCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_locator_cache_total",
			Help: "Vault holder cache lookups by result",
		},
		[]string{"result"},
	)

	// RecordsLoaded tracks how many saving records an aggregation returned
	RecordsLoaded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bitsave_records_loaded",
			Help:    "Number of saving records returned per aggregation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// TransactionsSent counts transactions broadcast to each chain
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_transactions_sent_total",
			Help: "Total number of transactions sent",
		},
		[]string{"chain", "status"},
	)

	// ConfirmationWait tracks time spent waiting for confirmations
	ConfirmationWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitsave_confirmation_wait_seconds",
			Help:    "Time from submission to required confirmation depth",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"chain"},
	)

	// GasUsed tracks gas used by confirmed transactions
	GasUsed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitsave_gas_used",
			Help:    "Gas used for confirmed transactions",
			Buckets: []float64{21000, 50000, 100000, 200000, 300000, 500000, 1000000},
		},
		[]string{"chain"},
	)

	// PriceLookups counts price oracle lookups by symbol and result
	PriceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitsave_price_lookups_total",
			Help: "Total number of price oracle lookups",
		},
		[]string{"symbol", "result"},
	)
)
