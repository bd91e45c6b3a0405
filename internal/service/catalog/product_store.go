package catalog

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductStore управляет товарами витрины.
type ProductStore struct {
	base
	repo domain.ProductRepository
}

// NewProductStore создаёт хранилище товаров поверх репозитория.
func NewProductStore(repo domain.ProductRepository, deps Deps) *ProductStore {
	return &ProductStore{
		base: base{resource: domain.ResourceProduct, deps: deps.withDefaults("product-store")},
		repo: repo,
	}
}

// List возвращает страницу товаров, отсортированных по ID.
func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter) (_ []domain.Product, err error) {
	defer s.observe("list", time.Now(), &err)

	page, err := filter.Page.Normalize()
	if err != nil {
		return nil, err
	}
	filter.Page = page

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return products, nil
}

// Get возвращает товар по идентификатору.
func (s *ProductStore) Get(ctx context.Context, id string) (_ domain.Product, err error) {
	defer s.observe("get", time.Now(), &err)

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, s.storeError("get", err)
	}
	return product, nil
}

// Create проверяет входные данные, присваивает идентификатор и сохраняет товар.
func (s *ProductStore) Create(ctx context.Context, in domain.ProductInput) (_ domain.Product, err error) {
	defer s.observe("create", time.Now(), &err)

	product, err := domain.NewProduct(s.deps.IDs.NewID(), in, s.deps.Now())
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return domain.Product{}, s.storeError("create", err)
	}

	s.deps.Logger.WithFields(log.Fields{"product_id": product.ID}).Info("product created")
	s.publish(ctx, domain.EventProductCreated, product.ID, productPayload(product))
	return product, nil
}

// Edit применяет частичное обновление. При ошибке валидации запись не меняется.
func (s *ProductStore) Edit(ctx context.Context, id string, changes domain.ProductChanges) (_ domain.Product, err error) {
	defer s.observe("edit", time.Now(), &err)

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, s.storeError("edit", err)
	}
	next, err := current.Apply(changes, s.deps.Now())
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Update(ctx, next); err != nil {
		return domain.Product{}, s.storeError("edit", err)
	}

	s.publish(ctx, domain.EventProductUpdated, next.ID, productPayload(next))
	return next, nil
}

// Destroy удаляет товар. Повторное удаление не является ошибкой.
// Заказы, ссылающиеся на товар, не трогаются: их ссылки становятся висячими.
func (s *ProductStore) Destroy(ctx context.Context, id string) (err error) {
	defer s.observe("destroy", time.Now(), &err)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError("destroy", err)
	}

	s.deps.Logger.WithFields(log.Fields{"product_id": id}).Info("product deleted")
	s.publish(ctx, domain.EventProductDeleted, id, map[string]any{"id": id})
	return nil
}

func productPayload(p domain.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"price_minor": p.PriceMinor,
		"currency":    p.Currency,
		"tags":        p.Tags,
	}
}
