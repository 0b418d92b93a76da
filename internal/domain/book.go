package domain

import "time"

// Book — read-only проекция записи каталога. Подсистема корзин никогда её не мутирует.
type Book struct {
	ID     string
	Title  string
	Genres []string
	// PriceMinor — цена за экземпляр в минимальных денежных единицах.
	PriceMinor int64
	// Stock — доступный остаток на момент чтения. Гарантия точечная:
	// к моменту исполнения заказа остаток может измениться.
	Stock     int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookMap индексирует записи каталога по идентификатору.
type BookMap map[string]Book

// NewBookMap строит индекс по идентификатору из списка записей каталога.
func NewBookMap(books []Book) BookMap {
	m := make(BookMap, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return m
}
