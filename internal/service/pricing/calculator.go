package pricing

import "github.com/vladislavdragonenkov/bookstore/internal/domain"

// DefaultShippingMinor — стоимость доставки по умолчанию в минимальных единицах.
// Процесс может переопределить её через конфигурацию приложения.
const DefaultShippingMinor int64 = 100

// CartSummary считает итоги по выжившим позициям корзины: суммарное количество
// и суммарную стоимость qty × price. Позиции без записи в каталоге дают нулевой вклад.
func CartSummary(items []domain.CartItem, books domain.BookMap) domain.CartSummary {
	var totalItems int32
	var totalPrice int64

	for _, item := range items {
		totalItems += item.Qty
		if book, ok := books[item.BookID]; ok {
			totalPrice += int64(item.Qty) * book.PriceMinor
		}
	}

	return domain.CartSummary{
		TotalItems:      totalItems,
		TotalPriceMinor: totalPrice,
	}
}

// CheckoutSummary расширяет итоги корзины стоимостью доставки.
// Доставка прибавляется безусловно, в том числе к пустой корзине.
func CheckoutSummary(items []domain.CartItem, books domain.BookMap, shippingMinor int64) domain.CheckoutSummary {
	summary := CartSummary(items, books)
	return domain.CheckoutSummary{
		TotalItems:      summary.TotalItems,
		TotalPriceMinor: summary.TotalPriceMinor,
		ShippingMinor:   shippingMinor,
		GrandTotalMinor: summary.TotalPriceMinor + shippingMinor,
	}
}
