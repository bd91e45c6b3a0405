package domain

const (
	// DefaultLimit — размер страницы по умолчанию.
	DefaultLimit = 25
	// MaxLimit — верхняя граница размера страницы.
	MaxLimit = 500
)

// Page задаёт окно offset/limit над коллекцией, отсортированной по ID.
type Page struct {
	Offset int
	Limit  int
}

// Normalize подставляет значения по умолчанию и проверяет границы.
// Limit == 0 трактуется как DefaultLimit, Limit > MaxLimit обрезается.
func (p Page) Normalize() (Page, error) {
	if p.Offset < 0 {
		return Page{}, ErrOffsetNegative
	}
	if p.Limit < 0 {
		return Page{}, ErrLimitNegative
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// Window возвращает границы [start, end) для коллекции длины n.
func (p Page) Window(n int) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}

// ProductFilter — параметры выборки товаров.
type ProductFilter struct {
	Page
	// Tag оставляет только товары с указанным тегом.
	Tag string
}

// Matches проверяет товар на соответствие фильтру (без учёта пагинации).
func (f ProductFilter) Matches(p Product) bool {
	return f.Tag == "" || p.HasTag(f.Tag)
}

// OrderFilter — параметры выборки заказов. Условия объединяются через AND.
type OrderFilter struct {
	Page
	ProductID string
	Status    *OrderStatus
}

// Matches проверяет заказ на соответствие фильтру (без учёта пагинации).
func (f OrderFilter) Matches(o Order) bool {
	if f.ProductID != "" && !o.HasProduct(f.ProductID) {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	return true
}
