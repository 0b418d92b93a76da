package app

import (
	"github.com/vladislavdragonenkov/bookstore/internal/service/pricing"
)

// Config описывает настройки запуска приложения. Пустые адреса backend'ов
// означают in-memory реализации для локальной разработки.
type Config struct {
	// MetricsAddr — адрес служебного HTTP-сервера (метрики и health checks).
	MetricsAddr string

	// RedisURL — хранилище корзин, например redis://localhost:6379/0.
	RedisURL string

	// MongoURI и MongoDatabase — каталог книг.
	MongoURI      string
	MongoDatabase string

	// PostgresDSN — хранилище заказов.
	PostgresDSN string

	// KafkaBrokers — брокеры для публикации событий заказов.
	KafkaBrokers []string

	// PaymentBaseURL — корень API платёжного провайдера.
	PaymentBaseURL string

	// ShippingCostMinor — стоимость доставки в минимальных единицах.
	ShippingCostMinor int64
}

// DefaultConfig возвращает настройки по умолчанию: in-memory backend'ы
// и доставка за 100.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:       ":9090",
		MongoDatabase:     "bookstore",
		ShippingCostMinor: pricing.DefaultShippingMinor,
	}
}
