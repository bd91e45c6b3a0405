package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductLookup — то, что хранилищу заказов нужно от товаров: поиск по идентификатору.
// Отсутствие товара сообщается ошибкой, для которой domain.IsNotFound возвращает true.
type ProductLookup interface {
	Get(ctx context.Context, id string) (domain.Product, error)
}

// OrderStore управляет заказами и разрешает их ссылки на товары при чтении.
type OrderStore struct {
	base
	orders   domain.OrderRepository
	products ProductLookup
}

// NewOrderStore создаёт хранилище заказов. Обычно products — это *ProductStore.
func NewOrderStore(orders domain.OrderRepository, products ProductLookup, deps Deps) *OrderStore {
	return &OrderStore{
		base:     base{resource: domain.ResourceOrder, deps: deps.withDefaults("order-store")},
		orders:   orders,
		products: products,
	}
}

// List возвращает страницу заказов без разрешения ссылок.
func (s *OrderStore) List(ctx context.Context, filter domain.OrderFilter) (_ []domain.Order, err error) {
	defer s.observe("list", time.Now(), &err)

	page, err := filter.Page.Normalize()
	if err != nil {
		return nil, err
	}
	filter.Page = page
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.ErrInvalidOrderStatus
	}

	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return orders, nil
}

// Get возвращает заказ с разрешёнными товарами.
func (s *OrderStore) Get(ctx context.Context, id string) (_ domain.OrderView, err error) {
	defer s.observe("get", time.Now(), &err)

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.OrderView{}, s.storeError("get", err)
	}
	view, err := s.resolve(ctx, order)
	if err != nil {
		return domain.OrderView{}, s.storeError("get", err)
	}
	return view, nil
}

// Create сохраняет заказ. Существование товаров не проверяется.
func (s *OrderStore) Create(ctx context.Context, in domain.OrderInput) (_ domain.OrderView, err error) {
	defer s.observe("create", time.Now(), &err)

	order, err := domain.NewOrder(s.deps.IDs.NewID(), in, s.deps.Now())
	if err != nil {
		return domain.OrderView{}, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return domain.OrderView{}, s.storeError("create", err)
	}

	s.deps.Logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("order created")
	s.publish(ctx, domain.EventOrderCreated, order.ID, orderPayload(order))

	return s.resolveWritten(ctx, "create", order)
}

// Edit применяет частичное обновление заказа. Допустим любой переход между статусами.
func (s *OrderStore) Edit(ctx context.Context, id string, changes domain.OrderChanges) (_ domain.OrderView, err error) {
	defer s.observe("edit", time.Now(), &err)

	current, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.OrderView{}, s.storeError("edit", err)
	}
	next, err := current.Apply(changes, s.deps.Now())
	if err != nil {
		return domain.OrderView{}, err
	}
	if err := s.orders.Update(ctx, next); err != nil {
		return domain.OrderView{}, s.storeError("edit", err)
	}

	s.publish(ctx, domain.EventOrderUpdated, next.ID, orderPayload(next))
	if next.Status != current.Status {
		s.deps.Logger.WithFields(log.Fields{
			"order_id": next.ID,
			"from":     current.Status,
			"to":       next.Status,
		}).Info("order status changed")
		s.publish(ctx, domain.EventOrderStatusChanged, next.ID, map[string]any{
			"id":   next.ID,
			"from": string(current.Status),
			"to":   string(next.Status),
		})
	}

	return s.resolveWritten(ctx, "edit", next)
}

// Destroy удаляет заказ. Повторное удаление не является ошибкой, товары не затрагиваются.
func (s *OrderStore) Destroy(ctx context.Context, id string) (err error) {
	defer s.observe("destroy", time.Now(), &err)

	if err := s.orders.Delete(ctx, id); err != nil {
		return s.storeError("destroy", err)
	}

	s.deps.Logger.WithFields(log.Fields{"order_id": id}).Info("order deleted")
	s.publish(ctx, domain.EventOrderDeleted, id, map[string]any{"id": id})
	return nil
}

// resolveWritten разрешает ссылки уже сохранённого заказа. Ошибка дополнительно
// помечается ErrReferencesUnresolved и содержит идентификатор записи.
func (s *OrderStore) resolveWritten(ctx context.Context, operation string, order domain.Order) (domain.OrderView, error) {
	view, err := s.resolve(ctx, order)
	if err != nil {
		return domain.OrderView{}, fmt.Errorf("%w: order %s: %w",
			domain.ErrReferencesUnresolved, order.ID, s.storeError(operation, err))
	}
	return view, nil
}

// resolve запрашивает товары заказа параллельно, сохраняя исходный порядок ссылок.
// Отсутствующий товар даёт nil-элемент, любая другая ошибка прерывает операцию.
func (s *OrderStore) resolve(ctx context.Context, order domain.Order) (domain.OrderView, error) {
	view := domain.OrderView{
		ID:         order.ID,
		BuyerEmail: order.BuyerEmail,
		Products:   make([]*domain.Product, len(order.Products)),
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	if len(order.Products) == 0 {
		return view, nil
	}

	var dangling atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.deps.ResolveConcurrency)
	for i, productID := range order.Products {
		i, productID := i, productID
		g.Go(func() error {
			product, err := s.products.Get(gctx, productID)
			switch {
			case err == nil:
				view.Products[i] = &product
			case domain.IsNotFound(err):
				dangling.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.OrderView{}, err
	}

	if n := dangling.Load(); n > 0 {
		s.deps.Metrics.RecordDanglingReferences(int(n))
		s.deps.Logger.WithFields(log.Fields{
			"order_id": order.ID,
			"dangling": n,
		}).Debug("order references deleted products")
	}
	return view, nil
}

var _ ProductLookup = (*ProductStore)(nil)

func orderPayload(o domain.Order) map[string]any {
	return map[string]any{
		"id":          o.ID,
		"buyer_email": o.BuyerEmail,
		"products":    o.Products,
		"status":      string(o.Status),
	}
}
