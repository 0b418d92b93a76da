package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if v := os.Getenv("BOOKSTORE_LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			log.SetLevel(level)
		}
	}
}

// readConfig формирует конфигурацию приложения, позволяя переопределить
// адреса и backend'ы через переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("BOOKSTORE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("BOOKSTORE_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("BOOKSTORE_MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("BOOKSTORE_MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("BOOKSTORE_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("BOOKSTORE_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("BOOKSTORE_PAYMENT_URL"); v != "" {
		cfg.PaymentBaseURL = v
	}
	if v := os.Getenv("BOOKSTORE_SHIPPING_COST"); v != "" {
		if cost, err := strconv.ParseInt(v, 10, 64); err == nil && cost >= 0 {
			cfg.ShippingCostMinor = cost
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr": cfg.MetricsAddr,
	}).Info("запускаем bookstore service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("bookstore service остановлен")
}
