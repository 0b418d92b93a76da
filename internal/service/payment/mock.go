package payment

import "github.com/vladislavdragonenkov/bookstore/internal/domain"

// MockGateway — конфигурируемая заглушка PaymentGateway для тестов.
type MockGateway struct {
	SessionID string
	CreateErr error

	Acknowledged bool
	MarkErr      error

	CreateCalls int
	MarkCalls   int

	LastAmountMinor int64
	LastCurrency    string
	LastReferenceID string
	LastSessionID   string
	LastSuccess     bool
}

// NewMockGateway возвращает mock, выдающий указанный идентификатор сессии.
func NewMockGateway(sessionID string) *MockGateway {
	return &MockGateway{SessionID: sessionID, Acknowledged: true}
}

// CreateSession возвращает настроенную сессию, запоминая параметры вызова.
func (m *MockGateway) CreateSession(amountMinor int64, currency, referenceID string) (string, error) {
	m.CreateCalls++
	m.LastAmountMinor = amountMinor
	m.LastCurrency = currency
	m.LastReferenceID = referenceID
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return m.SessionID, nil
}

// MarkSessionResult запоминает исход и возвращает настроенное подтверждение.
func (m *MockGateway) MarkSessionResult(sessionID string, success bool) (bool, error) {
	m.MarkCalls++
	m.LastSessionID = sessionID
	m.LastSuccess = success
	if m.MarkErr != nil {
		return false, m.MarkErr
	}
	return m.Acknowledged, nil
}

var _ domain.PaymentGateway = (*MockGateway)(nil)
