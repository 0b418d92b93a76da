package domain

// CartItem представляет одну позицию корзины.
type CartItem struct {
	// BookID — идентификатор книги в каталоге.
	BookID string `json:"book_id"`
	// Qty — количество экземпляров.
	Qty int32 `json:"qty"`
}

// Cart агрегирует позиции, сохранённые под ключом корзины.
// Корзина целиком принадлежит хранилищу: никакая копия не живёт дольше запроса.
type Cart struct {
	Items []CartItem `json:"items"`
}

// BookIDs возвращает идентификаторы книг в порядке добавления.
func (c *Cart) BookIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.BookID)
	}
	return ids
}

// Validate проверяет позиции корзины и возвращает список замечаний.
func (c *Cart) Validate() []error {
	var errs []error
	for _, item := range c.Items {
		if item.BookID == "" {
			errs = append(errs, ErrBookIDRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrQtyInvalid)
		}
	}
	return errs
}

// RemovalReason объясняет, почему позиция выпала из корзины при сверке.
type RemovalReason string

const (
	// RemovalReasonNotFound — книги больше нет в каталоге.
	RemovalReasonNotFound RemovalReason = "book not found"
	// RemovalReasonInsufficientStock — запрошено больше, чем доступно на складе.
	// Позиция исключается целиком, количество не урезается.
	RemovalReasonInsufficientStock RemovalReason = "insufficient stock"
)

// RemovedItem описывает позицию, отброшенную при сверке корзины с каталогом.
type RemovedItem struct {
	BookID string        `json:"book_id"`
	Reason RemovalReason `json:"reason"`
}

// CartItemDisplay — денормализованная строка корзины для UI: позиция,
// соединённая с названием и ценой из каталога. Живёт один запрос.
type CartItemDisplay struct {
	BookID     string `json:"book_id"`
	Title      string `json:"title"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"qty"`
}

// CartSummary — итоги по корзине без доставки.
type CartSummary struct {
	TotalItems      int32 `json:"total_items"`
	TotalPriceMinor int64 `json:"total_price_minor"`
}

// CheckoutSummary — итоговая стоимость перед оплатой, включая доставку.
type CheckoutSummary struct {
	TotalItems      int32 `json:"total_items"`
	TotalPriceMinor int64 `json:"total_price_minor"`
	ShippingMinor   int64 `json:"shipping_minor"`
	GrandTotalMinor int64 `json:"grand_total_minor"`
}
