package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/health"
	"github.com/vladislavdragonenkov/bookstore/internal/metrics"
	"github.com/vladislavdragonenkov/bookstore/internal/service/cart"
	"github.com/vladislavdragonenkov/bookstore/internal/service/catalog"
	"github.com/vladislavdragonenkov/bookstore/internal/service/order"
	"github.com/vladislavdragonenkov/bookstore/internal/version"
)

// Services — собранные сервисы приложения. Транспортный слой поверх них
// в эту подсистему не входит.
type Services struct {
	Catalog *catalog.Service
	Carts   *cart.Service
	Orders  *order.Workflow
}

// BuildServices связывает зависимости в сервисы предметной области.
func BuildServices(cfg Config, deps *Dependencies, m *metrics.CommerceMetrics) *Services {
	catalogSvc := catalog.NewService(deps.CatalogGateway, deps.Logger.WithField("component", "catalog"))
	cartSvc := cart.NewService(
		deps.CartRepo,
		catalogSvc,
		cfg.ShippingCostMinor,
		deps.Logger.WithField("component", "cart"),
		m,
	)

	var publisher order.EventPublisher
	if deps.KafkaProducer != nil {
		publisher = deps.KafkaProducer
	}

	orderSvc := order.NewWorkflow(
		cartSvc,
		catalogSvc,
		deps.PaymentGateway,
		deps.OrderRepo,
		publisher,
		deps.Logger.WithField("component", "order"),
		m,
	)

	return &Services{
		Catalog: catalogSvc,
		Carts:   cartSvc,
		Orders:  orderSvc,
	}
}

// Run поднимает зависимости, собирает сервисы и держит служебный HTTP-сервер
// до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	commerceMetrics := metrics.NewCommerceMetrics()
	services := BuildServices(cfg, deps, commerceMetrics)

	// Прогрев каталога: падение здесь не фатально, каталог может подняться позже.
	if books, err := services.Catalog.DefaultBooks(); err != nil {
		logger.WithError(err).Warn("catalog warmup failed")
	} else {
		logger.WithField("books", len(books)).Info("catalog reachable")
	}

	healthHandler := health.NewHandler(version.GetVersion())
	for name, checker := range deps.Checkers {
		healthHandler.RegisterChecker(name, checker)
	}

	opsSrv := startOpsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	logger.Info(version.String())
	logger.Info("bookstore service started")

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")
	shutdownHTTP(opsSrv, logger)

	return ctx.Err()
}

// startOpsServer запускает служебный HTTP-сервер: метрики и health checks.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
