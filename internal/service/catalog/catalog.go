// Package catalog реализует хранилища товаров и заказов витрины поверх репозиториев.
package catalog

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/idgen"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// DefaultResolveConcurrency ограничивает число параллельных запросов товаров при разрешении заказа.
const DefaultResolveConcurrency = 8

// Deps — общие зависимости хранилищ. Нулевые поля заменяются значениями по умолчанию.
type Deps struct {
	IDs     domain.IDGenerator
	Events  domain.EventPublisher
	Metrics *metrics.StoreMetrics
	Logger  *log.Entry
	Now     func() time.Time

	ResolveConcurrency int
}

func (d Deps) withDefaults(component string) Deps {
	if d.IDs == nil {
		d.IDs = idgen.New()
	}
	if d.Events == nil {
		d.Events = domain.NoopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = log.New().WithField("component", component)
	}
	if d.Now == nil {
		d.Now = defaultNow
	}
	if d.ResolveConcurrency <= 0 {
		d.ResolveConcurrency = DefaultResolveConcurrency
	}
	return d
}

// Postgres хранит время с точностью до микросекунд, обрезаем заранее, чтобы движки совпадали.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// base собирает общие для обоих хранилищ действия: учёт метрик, обёртку ошибок и публикацию событий.
type base struct {
	resource domain.Resource
	deps     Deps
}

// observe фиксирует результат операции в метриках. Вызывается через defer с указателем на ошибку.
func (b base) observe(operation string, start time.Time, errp *error) {
	b.deps.Metrics.ObserveOperation(string(b.resource), operation, resultLabel(*errp), time.Since(start))
}

// storeError пропускает ошибки валидации и отсутствия записи, остальные считает сбоем хранилища.
func (b base) storeError(operation string, err error) error {
	if err == nil || domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsStoreUnavailable(err) {
		return err
	}
	b.deps.Logger.WithError(err).WithFields(log.Fields{
		"resource":  b.resource,
		"operation": operation,
	}).Error("store operation failed")
	return fmt.Errorf("%w: %s %s: %w", domain.ErrStoreUnavailable, b.resource, operation, err)
}

// publish отправляет событие; ошибка только логируется и учитывается в метриках.
func (b base) publish(ctx context.Context, eventType domain.EventType, id string, payload map[string]any) {
	event := domain.Event{
		Type:       eventType,
		Resource:   b.resource,
		ResourceID: id,
		Payload:    payload,
		OccurredAt: b.deps.Now(),
	}
	if err := b.deps.Events.Publish(ctx, event); err != nil {
		b.deps.Metrics.RecordPublishFailure(string(eventType))
		b.deps.Logger.WithError(err).WithFields(log.Fields{
			"event_type":  eventType,
			"resource_id": id,
		}).Warn("failed to publish change event")
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case domain.IsValidation(err):
		return metrics.ResultValidation
	case domain.IsNotFound(err):
		return metrics.ResultNotFound
	default:
		return metrics.ResultUnavailable
	}
}

// ProductService — операции над товарами, доступные транспортам.
type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Edit(ctx context.Context, id string, changes domain.ProductChanges) (domain.Product, error)
	Destroy(ctx context.Context, id string) error
}

// OrderService — операции над заказами, доступные транспортам.
type OrderService interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (domain.OrderView, error)
	Create(ctx context.Context, in domain.OrderInput) (domain.OrderView, error)
	Edit(ctx context.Context, id string, changes domain.OrderChanges) (domain.OrderView, error)
	Destroy(ctx context.Context, id string) error
}

var (
	_ ProductService = (*ProductStore)(nil)
	_ OrderService   = (*OrderStore)(nil)
)
