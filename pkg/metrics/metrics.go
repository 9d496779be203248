package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidatorResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_results_total",
			Help: "Validator results appended to orders",
		},
		[]string{"validator", "code"},
	)
	ValidatorFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_failures_total",
			Help: "Validator executions that failed (error, panic or id mismatch)",
		},
		[]string{"validator"},
	)
	OrdersDecided = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_decided_total",
			Help: "Orders passed through the reject rule",
		},
		[]string{"verdict"}, // accepted|rejected
	)
	RejectionHooksFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rejection_hooks_failed_total",
			Help: "Rejection handlers that returned an error",
		},
	)
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_dropped_total",
			Help: "Number of messages committed undecided because a validator is broken",
		},
		[]string{"topic"},
	)
)

var (
	StockCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_cache_operations_total",
			Help: "Stock cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	StockCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_cache_size",
			Help: "Number of products currently in stock cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister регистрирует все метрики в реестре по умолчанию; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ValidatorResults, ValidatorFailures, OrdersDecided, RejectionHooksFailed,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesDropped,
			StockCacheOps, StockCacheSize,
		)
	})
}
