package domain

import (
	"strings"
	"time"
)

// DefaultCurrency подставляется, если валюта товара не указана.
const DefaultCurrency = "USD"

// Product — товар витрины. Кроме ID поля непрозрачны для заказов.
type Product struct {
	ID          string
	Name        string
	Description string
	// PriceMinor — цена в минимальных денежных единицах (центы, копейки).
	PriceMinor int64
	Currency   string
	ImageURL   string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductInput — поля для создания товара.
type ProductInput struct {
	Name        string
	Description string
	PriceMinor  int64
	Currency    string
	ImageURL    string
	Tags        []string
}

// ProductChanges — частичное обновление товара; nil-поле означает «не менять».
type ProductChanges struct {
	Name        *string
	Description *string
	PriceMinor  *int64
	Currency    *string
	ImageURL    *string
	Tags        *[]string
}

// NewProduct собирает товар из входных данных и проверяет инварианты.
func NewProduct(id string, in ProductInput, now time.Time) (Product, error) {
	p := Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceMinor:  in.PriceMinor,
		Currency:    normalizeCurrency(in.Currency),
		ImageURL:    in.ImageURL,
		Tags:        cloneStrings(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Apply возвращает копию товара с применёнными изменениями.
// Исходное значение не меняется, поэтому при ошибке запись в хранилище остаётся прежней.
func (p Product) Apply(changes ProductChanges, now time.Time) (Product, error) {
	next := p
	next.Tags = cloneStrings(p.Tags)
	if changes.Name != nil {
		next.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Description != nil {
		next.Description = *changes.Description
	}
	if changes.PriceMinor != nil {
		next.PriceMinor = *changes.PriceMinor
	}
	if changes.Currency != nil {
		next.Currency = normalizeCurrency(*changes.Currency)
	}
	if changes.ImageURL != nil {
		next.ImageURL = *changes.ImageURL
	}
	if changes.Tags != nil {
		next.Tags = cloneStrings(*changes.Tags)
	}
	if err := next.Validate(); err != nil {
		return Product{}, err
	}
	next.UpdatedAt = now
	return next, nil
}

// Validate проверяет обязательные поля товара.
func (p Product) Validate() error {
	if err := ValidateID("id", p.ID); err != nil {
		return err
	}
	if p.Name == "" {
		return ErrProductNameRequired
	}
	if p.PriceMinor < 0 {
		return ErrPriceNegative
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return NewValidationError("tags", "must not contain empty values")
		}
	}
	return nil
}

// HasTag сообщает, помечен ли товар тегом.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
