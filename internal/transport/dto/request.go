package dto

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductRequest — тело создания и правки товара. Отсутствующее поле остаётся nil.
type ProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	PriceMinor  *int64    `json:"priceMinor"`
	Currency    *string   `json:"currency"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        *[]string `json:"tags"`
}

// OrderRequest — тело создания и правки заказа. Статус проверяется при разборе JSON.
type OrderRequest struct {
	BuyerEmail *string             `json:"buyerEmail"`
	Products   *[]string           `json:"products"`
	Status     *domain.OrderStatus `json:"status"`
}

// ListRequest — параметры выборки. Для товаров используется Tag, для заказов ProductID и Status.
type ListRequest struct {
	Offset    *int   `json:"offset"`
	Limit     *int   `json:"limit"`
	Tag       string `json:"tag"`
	ProductID string `json:"productId"`
	Status    string `json:"status"`
}

// IDRequest — запрос, адресующий одну запись (gRPC).
type IDRequest struct {
	ID string `json:"id"`
}

// Decode разбирает JSON-тело. Любая ошибка разбора считается ошибкой валидации.
func Decode(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		if domain.IsValidation(err) {
			return err
		}
		if err == io.EOF {
			return domain.NewValidationError("body", "is required")
		}
		return domain.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}

// DecodeBytes — вариант Decode для готового буфера.
func DecodeBytes(data []byte, dst any) error {
	return Decode(bytes.NewReader(data), dst)
}

func (r ProductRequest) Input() domain.ProductInput {
	var in domain.ProductInput
	if r.Name != nil {
		in.Name = *r.Name
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.PriceMinor != nil {
		in.PriceMinor = *r.PriceMinor
	}
	if r.Currency != nil {
		in.Currency = *r.Currency
	}
	if r.ImageURL != nil {
		in.ImageURL = *r.ImageURL
	}
	if r.Tags != nil {
		in.Tags = *r.Tags
	}
	return in
}

func (r ProductRequest) Changes() domain.ProductChanges {
	return domain.ProductChanges{
		Name:        r.Name,
		Description: r.Description,
		PriceMinor:  r.PriceMinor,
		Currency:    r.Currency,
		ImageURL:    r.ImageURL,
		Tags:        r.Tags,
	}
}

func (r OrderRequest) Input() domain.OrderInput {
	var in domain.OrderInput
	if r.BuyerEmail != nil {
		in.BuyerEmail = *r.BuyerEmail
	}
	if r.Products != nil {
		in.Products = *r.Products
	}
	if r.Status != nil {
		in.Status = *r.Status
	}
	return in
}

func (r OrderRequest) Changes() domain.OrderChanges {
	return domain.OrderChanges{
		BuyerEmail: r.BuyerEmail,
		Products:   r.Products,
		Status:     r.Status,
	}
}

// ListRequestFromQuery читает offset, limit, tag, productId и status из строки запроса.
func ListRequestFromQuery(q url.Values) (ListRequest, error) {
	req := ListRequest{
		Tag:       q.Get("tag"),
		ProductID: q.Get("productId"),
		Status:    q.Get("status"),
	}
	var err error
	if req.Offset, err = queryInt(q, "offset"); err != nil {
		return ListRequest{}, err
	}
	if req.Limit, err = queryInt(q, "limit"); err != nil {
		return ListRequest{}, err
	}
	return req, nil
}

func queryInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be an integer")
	}
	return &v, nil
}

func (r ListRequest) page() domain.Page {
	var page domain.Page
	if r.Offset != nil {
		page.Offset = *r.Offset
	}
	if r.Limit != nil {
		page.Limit = *r.Limit
	}
	return page
}

// ProductFilter строит фильтр товаров. Нормализация страницы выполняется хранилищем.
func (r ListRequest) ProductFilter() domain.ProductFilter {
	return domain.ProductFilter{Page: r.page(), Tag: r.Tag}
}

// OrderFilter строит фильтр заказов, проверяя статус.
func (r ListRequest) OrderFilter() (domain.OrderFilter, error) {
	filter := domain.OrderFilter{Page: r.page(), ProductID: r.ProductID}
	if r.Status != "" {
		status, err := domain.ParseOrderStatus(r.Status)
		if err != nil {
			return domain.OrderFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}
