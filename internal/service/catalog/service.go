package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

// defaultBooksLimit ограничивает витринную выборку каталога.
const defaultBooksLimit = 20

// Service — читающий фасад каталога книг для корзин и витрины.
type Service struct {
	gateway domain.CatalogGateway
	logger  *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(gateway domain.CatalogGateway, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// DefaultBooks возвращает витринную выборку каталога, не больше 20 книг.
func (s *Service) DefaultBooks() ([]domain.Book, error) {
	return s.gateway.DefaultBooks(defaultBooksLimit)
}

// BooksByIDs возвращает записи каталога для найденных идентификаторов;
// отсутствующие просто опускаются.
func (s *Service) BooksByIDs(ids []string) ([]domain.Book, error) {
	return s.gateway.FetchMany(ids)
}

// HasEnoughStock сообщает, хватает ли остатка книги под запрошенное количество.
// Отсутствующая книга читается как «не хватает».
func (s *Service) HasEnoughStock(bookID string, qty int32) (bool, error) {
	book, err := s.gateway.FetchOne(bookID)
	if err != nil {
		return false, err
	}
	if book == nil {
		return false, nil
	}
	return book.Stock >= qty, nil
}
