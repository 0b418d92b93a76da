package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, платёжная сессия открыта, оплата не подтверждена.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusPaid — оплата подтверждена провайдером.
	OrderStatusPaid OrderStatus = "PAID"
	// OrderStatusCanceled — заказ отменён до оплаты.
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// OrderLineItem представляет одну позицию заказа. Название и цена заморожены
// на момент создания заказа и не ссылаются на живой каталог.
type OrderLineItem struct {
	BookID     string
	Title      string
	PriceMinor int64
	Qty        int32
}

// Order агрегирует состояние заказа и его позиции.
// После создания заказ в этой подсистеме неизменяем.
type Order struct {
	ID               string
	Items            []OrderLineItem
	AmountMinor      int64
	Currency         string
	ShippingAddress  string
	Status           OrderStatus
	PaymentSessionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.Currency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	for _, item := range o.Items {
		if item.BookID == "" {
			errs = append(errs, ErrBookIDRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrPriceInvalid)
		}
	}

	return errs
}
