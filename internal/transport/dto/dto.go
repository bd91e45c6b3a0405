// Package dto описывает JSON-представление товаров и заказов, общее для HTTP и gRPC.
package dto

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Product — товар в ответах API.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceMinor  int64     `json:"priceMinor"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"imageUrl"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Order — заказ со ссылками-идентификаторами (ответ списка).
type Order struct {
	ID         string             `json:"id"`
	BuyerEmail string             `json:"buyerEmail"`
	Products   []string           `json:"products"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// OrderView — заказ с разрешёнными товарами. Висячая ссылка сериализуется как null.
type OrderView struct {
	ID         string             `json:"id"`
	BuyerEmail string             `json:"buyerEmail"`
	Products   []*Product         `json:"products"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// Deleted — ответ на удаление.
type Deleted struct {
	Deleted bool `json:"deleted"`
}

// Items оборачивает результаты списка в gRPC-ответах.
type Items[T any] struct {
	Items []T `json:"items"`
}

// Error — тело ответа с ошибкой.
type Error struct {
	Error string `json:"error"`
}

func FromProduct(p domain.Product) Product {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceMinor:  p.PriceMinor,
		Currency:    p.Currency,
		ImageURL:    p.ImageURL,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProducts(products []domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromOrder(o domain.Order) Order {
	products := o.Products
	if products == nil {
		products = []string{}
	}
	return Order{
		ID:         o.ID,
		BuyerEmail: o.BuyerEmail,
		Products:   products,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func FromOrders(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func FromOrderView(v domain.OrderView) OrderView {
	products := make([]*Product, len(v.Products))
	for i, p := range v.Products {
		if p == nil {
			continue
		}
		converted := FromProduct(*p)
		products[i] = &converted
	}
	return OrderView{
		ID:         v.ID,
		BuyerEmail: v.BuyerEmail,
		Products:   products,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
