package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStoreMetrics(t *testing.T) {
	metrics := NewStoreMetrics()
	if metrics == nil {
		t.Fatal("NewStoreMetrics should not return nil")
	}
	if metrics.operations == nil || metrics.duration == nil {
		t.Fatal("operation collectors should not be nil")
	}
	if metrics.danglingReferences == nil || metrics.publishFailures == nil {
		t.Fatal("auxiliary collectors should not be nil")
	}

	// Повторная регистрация в том же реестре возвращает существующие коллекторы.
	again := NewStoreMetrics()
	if again.operations != metrics.operations {
		t.Error("expected re-registration to reuse existing operations counter")
	}
}

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetricsWithRegisterer(reg)

	metrics.ObserveOperation("order", "get", ResultOK, 10*time.Millisecond)
	metrics.ObserveOperation("order", "get", ResultOK, 20*time.Millisecond)
	metrics.ObserveOperation("order", "get", ResultNotFound, time.Millisecond)

	metric := &dto.Metric{}
	if err := metrics.operations.WithLabelValues("order", "get", ResultOK).Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("expected 2 ok operations, got %f", metric.Counter.GetValue())
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	var histogramCount uint64
	for _, family := range families {
		if family.GetName() != "storefront_store_operation_duration_seconds" {
			continue
		}
		for _, m := range family.GetMetric() {
			histogramCount += m.GetHistogram().GetSampleCount()
		}
	}
	if histogramCount != 3 {
		t.Errorf("expected 3 duration samples, got %d", histogramCount)
	}
}

func TestRecordDanglingReferencesAndPublishFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetricsWithRegisterer(reg)

	metrics.RecordDanglingReferences(2)
	metrics.RecordDanglingReferences(0)
	metrics.RecordPublishFailure("order.created")

	metric := &dto.Metric{}
	if err := metrics.danglingReferences.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("expected 2 dangling references, got %f", metric.Counter.GetValue())
	}

	failures := &dto.Metric{}
	if err := metrics.publishFailures.WithLabelValues("order.created").Write(failures); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if failures.Counter.GetValue() != 1 {
		t.Errorf("expected 1 publish failure, got %f", failures.Counter.GetValue())
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *StoreMetrics
	metrics.ObserveOperation("product", "list", ResultOK, time.Millisecond)
	metrics.RecordDanglingReferences(1)
	metrics.RecordPublishFailure("product.created")
}
