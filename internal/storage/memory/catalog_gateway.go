package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

// catalogGatewayInMemory — in-memory каталог книг для локальной разработки и тестов.
type catalogGatewayInMemory struct {
	mu    sync.RWMutex
	books []domain.Book
	byID  map[string]domain.Book
}

// NewCatalogGateway возвращает in-memory шлюз каталога, заполненный переданными книгами.
func NewCatalogGateway(books []domain.Book) domain.CatalogGateway {
	byID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &catalogGatewayInMemory{
		books: append([]domain.Book(nil), books...),
		byID:  byID,
	}
}

// FetchMany возвращает найденные записи; отсутствующие идентификаторы опускаются.
func (g *catalogGatewayInMemory) FetchMany(ids []string) ([]domain.Book, error) {
	if len(ids) == 0 {
		return []domain.Book{}, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := g.byID[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

// FetchOne возвращает запись каталога или nil, если книги нет.
func (g *catalogGatewayInMemory) FetchOne(id string) (*domain.Book, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	book, ok := g.byID[id]
	if !ok {
		return nil, nil
	}
	return &book, nil
}

// DefaultBooks возвращает витринную выборку, не больше limit записей.
func (g *catalogGatewayInMemory) DefaultBooks(limit int) ([]domain.Book, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := append([]domain.Book(nil), g.books...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ domain.CatalogGateway = (*catalogGatewayInMemory)(nil)
