package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderCreated  EventType = "order.created"
	EventTypeOrderPaid     EventType = "order.paid"
	EventTypeOrderCanceled EventType = "order.canceled"
)

// Topics для Kafka
const (
	TopicOrderEvents = "bookstore.order.events"
)

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType   EventType `json:"event_type"`
	OrderID     string    `json:"order_id"`
	CartKey     string    `json:"cart_key"`
	Status      string    `json:"status"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, cartKey, status string, amountMinor int64, currency string) *OrderEvent {
	return &OrderEvent{
		EventType:   eventType,
		OrderID:     orderID,
		CartKey:     cartKey,
		Status:      status,
		AmountMinor: amountMinor,
		Currency:    currency,
		Timestamp:   time.Now(),
	}
}
