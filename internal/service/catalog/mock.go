package catalog

import "github.com/vladislavdragonenkov/bookstore/internal/domain"

// MockGateway — конфигурируемая заглушка CatalogGateway для тестов.
type MockGateway struct {
	Books map[string]domain.Book

	FetchManyErr    error
	FetchOneErr     error
	DefaultBooksErr error

	FetchManyCalls    int
	FetchOneCalls     int
	DefaultBooksCalls int
}

// NewMockGateway возвращает mock, заполненный переданными книгами.
func NewMockGateway(books ...domain.Book) *MockGateway {
	byID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &MockGateway{Books: byID}
}

// FetchMany возвращает найденные книги в порядке запрошенных идентификаторов.
func (m *MockGateway) FetchMany(ids []string) ([]domain.Book, error) {
	m.FetchManyCalls++
	if m.FetchManyErr != nil {
		return nil, m.FetchManyErr
	}
	result := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := m.Books[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

// FetchOne возвращает книгу или nil, считая вызовы.
func (m *MockGateway) FetchOne(id string) (*domain.Book, error) {
	m.FetchOneCalls++
	if m.FetchOneErr != nil {
		return nil, m.FetchOneErr
	}
	book, ok := m.Books[id]
	if !ok {
		return nil, nil
	}
	return &book, nil
}

// DefaultBooks возвращает все книги mock'а, не больше limit.
func (m *MockGateway) DefaultBooks(limit int) ([]domain.Book, error) {
	m.DefaultBooksCalls++
	if m.DefaultBooksErr != nil {
		return nil, m.DefaultBooksErr
	}
	result := make([]domain.Book, 0, len(m.Books))
	for _, book := range m.Books {
		result = append(result, book)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ domain.CatalogGateway = (*MockGateway)(nil)
