package domain

import "context"

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ErrDuplicateID, если ID уже занят.
	Create(ctx context.Context, product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
	// List возвращает товары по фильтру, отсортированные по ID по возрастанию.
	// Страница фильтра уже нормализована вызывающей стороной.
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	// Update перезаписывает товар целиком или возвращает ErrProductNotFound.
	Update(ctx context.Context, product Product) error
	// Delete удаляет товар; отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, id string) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrDuplicateID, если ID уже занят.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает заказы по фильтру, отсортированные по ID по возрастанию.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Update перезаписывает заказ целиком или возвращает ErrOrderNotFound.
	// Проверки версий нет: при конкурентных правках выигрывает последняя запись.
	Update(ctx context.Context, order Order) error
	// Delete удаляет заказ; отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, id string) error
}
