package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

// sequentialIDs выдаёт предсказуемые идентификаторы id-0001, id-0002, ...
type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBackend = errors.New("connection refused")

// failingProducts отдаёт ошибку бэкенда; прочие методы не используются.
type failingProducts struct {
	domain.ProductRepository
}

func (failingProducts) Get(context.Context, string) (domain.Product, error) {
	return domain.Product{}, errBackend
}

func (failingProducts) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	return nil, errBackend
}

func (failingProducts) Create(context.Context, domain.Product) error { return errBackend }

type failingOrders struct {
	domain.OrderRepository
}

func (failingOrders) Get(context.Context, string) (domain.Order, error) {
	return domain.Order{}, errBackend
}

func (failingOrders) Delete(context.Context, string) error { return errBackend }

type fixture struct {
	products  *ProductStore
	orders    *OrderStore
	events    *recordingPublisher
	metrics   *metrics.StoreMetrics
	registry  *prometheus.Registry
	logs      *test.Hook
	productDB domain.ProductRepository
	orderDB   domain.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	registry := prometheus.NewRegistry()

	f := &fixture{
		events:    &recordingPublisher{},
		metrics:   metrics.NewStoreMetricsWithRegisterer(registry),
		registry:  registry,
		logs:      hook,
		productDB: memory.NewProductRepository(),
		orderDB:   memory.NewOrderRepository(),
	}

	clock := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	deps := Deps{
		IDs:     &sequentialIDs{},
		Events:  f.events,
		Metrics: f.metrics,
		Logger:  logger.WithField("component", "catalog-test"),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
	f.products = NewProductStore(f.productDB, deps)
	f.orders = NewOrderStore(f.orderDB, f.products, deps)
	return f
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.OrderStatus) *domain.OrderStatus { return &s }

// counterValue суммирует все серии счётчика с указанным именем.
func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
