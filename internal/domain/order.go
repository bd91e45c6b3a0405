package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// OrderStatus описывает жизненный цикл заказа витрины.
type OrderStatus string

const (
	// OrderStatusCreated — начальный статус, выставляется при создании без явного статуса.
	OrderStatusCreated OrderStatus = "CREATED"
	// OrderStatusPending — заказ принят в обработку.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusCompleted — заказ выполнен. Не терминальный: его можно вернуть в любой статус.
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// ErrInvalidOrderStatus возвращается для значения статуса вне перечисления.
var ErrInvalidOrderStatus = NewValidationError("status", "must be one of CREATED, PENDING, COMPLETED")

// OrderStatuses перечисляет все допустимые статусы.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCreated, OrderStatusPending, OrderStatusCompleted}
}

// ParseOrderStatus — единственный способ получить статус из внешних данных.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusCreated:
		return OrderStatusCreated, nil
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusCompleted:
		return OrderStatusCompleted, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Valid сообщает, принадлежит ли статус перечислению.
func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// CanTransitionTo проверяет допустимость перехода. Машина состояний не ограничена:
// разрешён любой переход между допустимыми статусами, в том числе назад.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusCreated, OrderStatusPending, OrderStatusCompleted:
		return next.Valid()
	default:
		return false
	}
}

// UnmarshalJSON отклоняет неизвестные статусы прямо при десериализации.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewValidationError("status", "must be a string")
	}
	parsed, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Order хранит заказ со ссылками на товары (только идентификаторы).
type Order struct {
	ID         string
	BuyerEmail string
	// Products — упорядоченный список идентификаторов товаров, допускается пустой.
	Products  []string
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderView — заказ с разрешёнными ссылками на товары.
// nil-элемент в Products означает висячую ссылку (товар удалён).
type OrderView struct {
	ID         string
	BuyerEmail string
	Products   []*Product
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderInput — поля для создания заказа. Пустой Status означает OrderStatusCreated.
type OrderInput struct {
	BuyerEmail string
	Products   []string
	Status     OrderStatus
}

// OrderChanges — частичное обновление заказа; nil-поле означает «не менять».
type OrderChanges struct {
	BuyerEmail *string
	Products   *[]string
	Status     *OrderStatus
}

// NewOrder собирает заказ из входных данных и проверяет инварианты.
func NewOrder(id string, in OrderInput, now time.Time) (Order, error) {
	status := in.Status
	if status == "" {
		status = OrderStatusCreated
	}
	o := Order{
		ID:         id,
		BuyerEmail: strings.TrimSpace(in.BuyerEmail),
		Products:   cloneStrings(in.Products),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Apply возвращает копию заказа с применёнными изменениями.
func (o Order) Apply(changes OrderChanges, now time.Time) (Order, error) {
	next := o
	next.Products = cloneStrings(o.Products)
	if changes.BuyerEmail != nil {
		next.BuyerEmail = strings.TrimSpace(*changes.BuyerEmail)
	}
	if changes.Products != nil {
		next.Products = cloneStrings(*changes.Products)
	}
	if changes.Status != nil {
		if !o.Status.CanTransitionTo(*changes.Status) {
			return Order{}, ErrInvalidOrderStatus
		}
		next.Status = *changes.Status
	}
	if err := next.Validate(); err != nil {
		return Order{}, err
	}
	next.UpdatedAt = now
	return next, nil
}

// Validate проверяет инварианты заказа.
func (o Order) Validate() error {
	if err := ValidateID("id", o.ID); err != nil {
		return err
	}
	if o.BuyerEmail == "" {
		return ErrBuyerEmailRequired
	}
	if !o.Status.Valid() {
		return ErrInvalidOrderStatus
	}
	for _, productID := range o.Products {
		if err := ValidateID("products", productID); err != nil {
			return err
		}
	}
	return nil
}

// HasProduct сообщает, ссылается ли заказ на товар.
func (o Order) HasProduct(productID string) bool {
	for _, id := range o.Products {
		if id == productID {
			return true
		}
	}
	return false
}
