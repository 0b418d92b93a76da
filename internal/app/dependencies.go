package app

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
	"github.com/vladislavdragonenkov/bookstore/internal/health"
	"github.com/vladislavdragonenkov/bookstore/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/bookstore/internal/service/payment"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/memory"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/mongo"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/postgres"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/redis"
)

// Dependencies содержит backend-зависимости приложения.
type Dependencies struct {
	CartRepo       domain.CartRepository
	CatalogGateway domain.CatalogGateway
	OrderRepo      domain.OrderRepository
	PaymentGateway domain.PaymentGateway
	KafkaProducer  *kafka.Producer
	Logger         *log.Entry

	// Checkers — проверки живости реальных backend'ов для /healthz.
	Checkers map[string]health.Checker

	closers []io.Closer
}

// NewDependencies создаёт зависимости по конфигурации: реальные хранилища
// для заполненных адресов, in-memory для остальных.
// NOTE: In-memory реализации и mock провайдера предназначены для локальной
// разработки и тестов.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		CartRepo:       memory.NewCartRepository(),
		CatalogGateway: memory.NewCatalogGateway(nil),
		OrderRepo:      memory.NewOrderRepository(),
		PaymentGateway: payment.NewMockGateway("dev-session"),
		Logger:         logger,
		Checkers:       make(map[string]health.Checker),
	}

	if cfg.RedisURL != "" {
		store, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		deps.CartRepo = redis.NewCartRepository(store)
		deps.Checkers["carts"] = health.NewPingChecker("carts", store.Ping)
		deps.closers = append(deps.closers, store)
		logger.Info("cart storage: redis")
	}

	if cfg.MongoURI != "" {
		store, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		deps.CatalogGateway = mongo.NewCatalogGateway(store)
		deps.Checkers["catalog"] = health.NewPingChecker("catalog", store.Ping)
		deps.closers = append(deps.closers, store)
		logger.Info("catalog storage: mongo")
	}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			deps.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		deps.OrderRepo = postgres.NewOrderRepository(store)
		deps.Checkers["orders"] = health.NewPingChecker("orders", store.Ping)
		deps.closers = append(deps.closers, store)
		logger.Info("order storage: postgres")
	}

	if cfg.PaymentBaseURL != "" {
		deps.PaymentGateway = payment.NewHTTPGateway(cfg.PaymentBaseURL, logger.WithField("component", "payment"))
		logger.WithField("url", cfg.PaymentBaseURL).Info("payment provider configured")
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.KafkaProducer = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	return deps, nil
}

// Close закрывает подключённые backend'ы в обратном порядке.
func (d *Dependencies) Close() {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
		d.KafkaProducer = nil
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close storage")
		}
	}
	d.closers = nil
}
