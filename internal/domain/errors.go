package domain

import "errors"

var (
	// Ошибка отсутствующего ключа корзины при мутирующих вызовах.
	ErrCartKeyRequired = errors.New("cart key is required")
	// Ошибка отсутствующего идентификатора книги.
	ErrBookIDRequired = errors.New("book_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrQtyInvalid = errors.New("qty must be greater than zero")
	// Ошибка отрицательной цены позиции.
	ErrPriceInvalid = errors.New("price must be non-negative")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка отсутствующего кода валюты.
	ErrCurrencyRequired = errors.New("currency is required")
	// ErrCartAlreadyExists сигнализирует о конфликте при создании корзины:
	// под этим ключом уже лежит корзина. Именно эта ошибка — авторитетный
	// сигнал гонки; предварительная проверка существования гарантий не даёт.
	ErrCartAlreadyExists = errors.New("cart already exists")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists возвращается при повторном создании заказа с тем же ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrStoreUnavailable — ошибка ввода-вывода хранилища корзин. Пробрасывается
	// вызывающему без повторов и без подмены дефолтами.
	ErrStoreUnavailable = errors.New("cart store unavailable")
	// ErrCatalogUnavailable — ошибка ввода-вывода каталога книг.
	ErrCatalogUnavailable = errors.New("book catalog unavailable")
	// ErrPaymentSessionFailed — платёжный провайдер не вернул пригодную сессию.
	ErrPaymentSessionFailed = errors.New("payment session failed")
)

// IsConflict проверяет, является ли ошибка конфликтом создания корзины или заказа.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCartAlreadyExists) || errors.Is(err, ErrOrderAlreadyExists)
}

// IsUnavailable проверяет, является ли ошибка недоступностью внешнего хранилища.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrCatalogUnavailable)
}
