package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK          = "ok"
	ResultValidation  = "validation_error"
	ResultNotFound    = "not_found"
	ResultUnavailable = "unavailable"
)

// StoreMetrics содержит метрики операций над товарами и заказами.
type StoreMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec

	// Висячие ссылки заказов на удалённые товары, найденные при разрешении.
	danglingReferences prometheus.Counter
	// Неудачные публикации событий об изменениях.
	publishFailures *prometheus.CounterVec
}

// NewStoreMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStoreMetricsWithRegisterer регистрирует метрики в переданном реестре.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		operations: registerCollector(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_store_operations_total",
			Help: "Total number of store operations by resource, operation and result",
		}, []string{"resource", "operation", "result"})),
		duration: registerCollector(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"resource", "operation"})),
		danglingReferences: registerCollector(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_dangling_references_total",
			Help: "Total number of order product references that no longer resolve",
		})),
		publishFailures: registerCollector(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_event_publish_failures_total",
			Help: "Total number of change events that failed to publish",
		}, []string{"event_type"})),
	}
}

func registerCollector[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ObserveOperation фиксирует результат и длительность операции. Безопасно для nil.
func (m *StoreMetrics) ObserveOperation(resource, operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(resource, operation, result).Inc()
	m.duration.WithLabelValues(resource, operation).Observe(elapsed.Seconds())
}

// RecordDanglingReferences увеличивает счётчик висячих ссылок на n.
func (m *StoreMetrics) RecordDanglingReferences(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.danglingReferences.Add(float64(n))
}

// RecordPublishFailure учитывает неудачную публикацию события.
func (m *StoreMetrics) RecordPublishFailure(eventType string) {
	if m == nil {
		return
	}
	m.publishFailures.WithLabelValues(eventType).Inc()
}
