package cart

import "github.com/vladislavdragonenkov/bookstore/internal/domain"

// ReconcileResult — результат сверки корзины с актуальным срезом каталога.
type ReconcileResult struct {
	// Surviving — выжившие позиции в исходном порядке.
	Surviving []domain.CartItem
	// Removed — отброшенные позиции с причиной удаления.
	Removed []domain.RemovedItem
}

// Reconcile сверяет сохранённую корзину с каталогом: позиции без записи в
// каталоге и позиции с количеством больше остатка отбрасываются целиком,
// без урезания количества. Функция чистая и идемпотентная: повторная сверка
// уже сверенной корзины с тем же срезом ничего не меняет.
func Reconcile(cart domain.Cart, books domain.BookMap) ReconcileResult {
	result := ReconcileResult{
		Surviving: make([]domain.CartItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		book, ok := books[item.BookID]
		switch {
		case !ok:
			result.Removed = append(result.Removed, domain.RemovedItem{
				BookID: item.BookID,
				Reason: domain.RemovalReasonNotFound,
			})
		case item.Qty > book.Stock:
			result.Removed = append(result.Removed, domain.RemovedItem{
				BookID: item.BookID,
				Reason: domain.RemovalReasonInsufficientStock,
			})
		default:
			result.Surviving = append(result.Surviving, item)
		}
	}

	return result
}

// DisplayRows строит денормализованные строки для UI по выжившим позициям.
func DisplayRows(items []domain.CartItem, books domain.BookMap) []domain.CartItemDisplay {
	rows := make([]domain.CartItemDisplay, 0, len(items))
	for _, item := range items {
		book, ok := books[item.BookID]
		if !ok {
			continue
		}
		rows = append(rows, domain.CartItemDisplay{
			BookID:     item.BookID,
			Title:      book.Title,
			PriceMinor: book.PriceMinor,
			Qty:        item.Qty,
		})
	}
	return rows
}
