package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommerceMetrics содержит метрики операций корзины и оформления заказа.
type CommerceMetrics struct {
	// Счётчики операций корзины
	cartsCreated    prometheus.Counter
	addItemRejected *prometheus.CounterVec
	cartViews       prometheus.Counter

	// Счётчик позиций, отброшенных при сверке с каталогом
	itemsReconciledAway *prometheus.CounterVec

	// Счётчики заказов
	ordersPlaced prometheus.Counter
	ordersFailed *prometheus.CounterVec

	// Гистограмма времени оформления заказа
	placeOrderDuration prometheus.Histogram
}

// NewCommerceMetrics создаёт новый экземпляр метрик.
func NewCommerceMetrics() *CommerceMetrics {
	return newCommerceMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCommerceMetricsWithRegisterer(registerer prometheus.Registerer) *CommerceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CommerceMetrics{
		cartsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_carts_created_total",
			Help: "Total number of carts created",
		}),
		addItemRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookstore_add_item_rejected_total",
			Help: "Total number of add-item requests rejected, by reason",
		}, []string{"reason"}),
		cartViews: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_cart_views_total",
			Help: "Total number of cart reads with reconciliation",
		}),
		itemsReconciledAway: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookstore_cart_items_removed_total",
			Help: "Total number of cart items dropped during reconciliation, by reason",
		}, []string{"reason"}),
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_orders_placed_total",
			Help: "Total number of orders persisted as payment-pending",
		}),
		ordersFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookstore_orders_failed_total",
			Help: "Total number of failed order placements, by stage",
		}, []string{"stage"}),
		placeOrderDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "bookstore_place_order_duration_seconds",
			Help:    "Duration of the place-order workflow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCartCreated увеличивает счётчик созданных корзин.
func (m *CommerceMetrics) RecordCartCreated() {
	if m == nil {
		return
	}
	m.cartsCreated.Inc()
}

// RecordAddItemRejected увеличивает счётчик отклонённых add-item запросов.
func (m *CommerceMetrics) RecordAddItemRejected(reason string) {
	if m == nil {
		return
	}
	m.addItemRejected.WithLabelValues(reason).Inc()
}

// RecordCartView увеличивает счётчик чтений корзины.
func (m *CommerceMetrics) RecordCartView() {
	if m == nil {
		return
	}
	m.cartViews.Inc()
}

// RecordItemRemoved увеличивает счётчик позиций, отброшенных сверкой.
func (m *CommerceMetrics) RecordItemRemoved(reason string) {
	if m == nil {
		return
	}
	m.itemsReconciledAway.WithLabelValues(reason).Inc()
}

// RecordOrderPlaced увеличивает счётчик успешно оформленных заказов.
func (m *CommerceMetrics) RecordOrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// RecordOrderFailed увеличивает счётчик провалов оформления заказа.
func (m *CommerceMetrics) RecordOrderFailed(stage string) {
	if m == nil {
		return
	}
	m.ordersFailed.WithLabelValues(stage).Inc()
}

// RecordPlaceOrderDuration записывает время оформления заказа.
func (m *CommerceMetrics) RecordPlaceOrderDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.placeOrderDuration.Observe(duration.Seconds())
}
