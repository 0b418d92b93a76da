package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

// cartRepositoryInMemory — простая in-memory реализация CartRepository.
type cartRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Cart
}

// NewCartRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCartRepository() domain.CartRepository {
	return &cartRepositoryInMemory{
		items: make(map[string]domain.Cart),
	}
}

// Get возвращает корзину или nil, если её нет. Пустой ключ читается как
// отсутствие корзины без обращения к map.
func (r *cartRepositoryInMemory) Get(key string) (*domain.Cart, error) {
	if key == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	copied := copyCart(cart)
	return &copied, nil
}

// CreateIfAbsent атомарно создаёт корзину с одной позицией, если ключ свободен.
func (r *cartRepositoryInMemory) CreateIfAbsent(key string, initial domain.CartItem) (*domain.Cart, error) {
	if key == "" {
		return nil, domain.ErrCartKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return nil, domain.ErrCartAlreadyExists
	}

	cart := domain.Cart{Items: []domain.CartItem{initial}}
	r.items[key] = cart

	copied := copyCart(cart)
	return &copied, nil
}

// Overwrite безусловно перезаписывает корзину под ключом.
func (r *cartRepositoryInMemory) Overwrite(key string, cart domain.Cart) (*domain.Cart, error) {
	if key == "" {
		return nil, domain.ErrCartKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[key] = copyCart(cart)

	copied := copyCart(cart)
	return &copied, nil
}

func copyCart(cart domain.Cart) domain.Cart {
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return domain.Cart{Items: items}
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
