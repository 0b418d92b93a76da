package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
	"github.com/vladislavdragonenkov/bookstore/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/bookstore/internal/metrics"
	"github.com/vladislavdragonenkov/bookstore/internal/service/cart"
	"github.com/vladislavdragonenkov/bookstore/internal/service/catalog"
)

// unknownBookTitle подставляется в позицию заказа, когда книга исчезла из
// каталога между просмотром корзины и оформлением. Такая позиция вносит
// нулевой вклад в сумму.
const unknownBookTitle = "Unknown Title"

// defaultCurrency — валюта всех заказов этой подсистемы.
const defaultCurrency = "USD"

// EventPublisher публикует события жизненного цикла заказа.
// Публикация не участвует в транзакции размещения заказа.
type EventPublisher interface {
	PublishOrderEvent(event *kafka.OrderEvent) error
}

// Workflow оркестрирует размещение заказа: чтение корзины, заморозка цен,
// создание платёжной сессии и сохранение заказа.
type Workflow struct {
	carts    *cart.Service
	catalog  *catalog.Service
	payments domain.PaymentGateway
	orders   domain.OrderRepository
	events   EventPublisher
	logger   *log.Entry
	metrics  *metrics.CommerceMetrics
}

// NewWorkflow конструирует оркестратор заказов. events может быть nil:
// тогда события не публикуются.
func NewWorkflow(
	carts *cart.Service,
	catalogSvc *catalog.Service,
	payments domain.PaymentGateway,
	orders domain.OrderRepository,
	events EventPublisher,
	logger *log.Entry,
	m *metrics.CommerceMetrics,
) *Workflow {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	return &Workflow{
		carts:    carts,
		catalog:  catalogSvc,
		payments: payments,
		orders:   orders,
		events:   events,
		logger:   logger,
		metrics:  m,
	}
}

// PlaceOrder проводит заказ по всем шагам. Отсутствующая корзина читается как
// пустая: заказ всё равно создаётся, сумма будет равна стоимости доставки.
// Позиции замораживают название и цену на момент вызова; книги, пропавшие из
// каталога, попадают в заказ с плейсхолдером и нулевой ценой. Заказ
// сохраняется только после успешного открытия платёжной сессии.
func (w *Workflow) PlaceOrder(cartKey, shippingAddress string) (*domain.Order, error) {
	started := time.Now()
	defer func() {
		w.metrics.RecordPlaceOrderDuration(time.Since(started))
	}()

	stored, err := w.carts.GetCartForOrder(cartKey)
	if err != nil {
		w.metrics.RecordOrderFailed("cart_fetch")
		return nil, err
	}

	var items []domain.CartItem
	if stored != nil {
		items = stored.Items
	}

	lineItems, total, err := w.freezeLineItems(items)
	if err != nil {
		w.metrics.RecordOrderFailed("catalog_fetch")
		return nil, err
	}
	total += w.carts.ShippingMinor()

	sessionID, err := w.payments.CreateSession(total, defaultCurrency, cartKey)
	if err != nil {
		w.metrics.RecordOrderFailed("payment_session")
		return nil, err
	}
	if sessionID == "" {
		w.metrics.RecordOrderFailed("payment_session")
		return nil, fmt.Errorf("%w: provider returned empty session id", domain.ErrPaymentSessionFailed)
	}

	now := time.Now().UTC()
	placed := domain.Order{
		ID:               uuid.NewString(),
		Items:            lineItems,
		AmountMinor:      total,
		Currency:         defaultCurrency,
		ShippingAddress:  shippingAddress,
		Status:           domain.OrderStatusPending,
		PaymentSessionID: sessionID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := w.orders.Create(placed); err != nil {
		w.metrics.RecordOrderFailed("persist")
		return nil, err
	}

	w.metrics.RecordOrderPlaced()
	w.logger.WithFields(log.Fields{
		"order_id":     placed.ID,
		"cart_key":     cartKey,
		"amount_minor": total,
		"items":        len(lineItems),
	}).Info("order placed")

	w.publishCreated(&placed, cartKey)

	return &placed, nil
}

// GetOrder возвращает сохранённый заказ.
func (w *Workflow) GetOrder(id string) (domain.Order, error) {
	return w.orders.Get(id)
}

// freezeLineItems строит позиции заказа по текущему срезу каталога.
// Количества из корзины не проверяются на остаток: снимок берётся как есть.
func (w *Workflow) freezeLineItems(items []domain.CartItem) ([]domain.OrderLineItem, int64, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}

	books, err := w.catalog.BooksByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	bookMap := domain.NewBookMap(books)

	lineItems := make([]domain.OrderLineItem, 0, len(items))
	var total int64
	for _, item := range items {
		line := domain.OrderLineItem{
			BookID: item.BookID,
			Title:  unknownBookTitle,
			Qty:    item.Qty,
		}
		if book, ok := bookMap[item.BookID]; ok {
			line.Title = book.Title
			line.PriceMinor = book.PriceMinor
		}
		total += int64(line.Qty) * line.PriceMinor
		lineItems = append(lineItems, line)
	}

	return lineItems, total, nil
}

// publishCreated отправляет order.created. Ошибка публикации не откатывает
// уже сохранённый заказ, только логируется.
func (w *Workflow) publishCreated(placed *domain.Order, cartKey string) {
	if w.events == nil {
		return
	}

	event := kafka.NewOrderEvent(
		kafka.EventTypeOrderCreated,
		placed.ID,
		cartKey,
		string(placed.Status),
		placed.AmountMinor,
		placed.Currency,
	)
	if err := w.events.PublishOrderEvent(event); err != nil {
		w.logger.WithError(err).WithField("order_id", placed.ID).
			Error("failed to publish order event")
	}
}
