package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

const (
	defaultConnTimeout = 5 * time.Second
	opTimeout          = 5 * time.Second
)

// Store оборачивает подключение к Redis.
type Store struct {
	client *redis.Client
}

// Open подключается к Redis по URL и проверяет доступность backend'а.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

// Close закрывает подключение.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

type cartRepository struct {
	client *redis.Client
}

// NewCartRepository создаёт Redis-реализацию CartRepository.
// Корзина хранится как JSON под своим ключом.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{client: store.client}
}

// Get возвращает корзину или nil, если её нет. Пустой ключ читается как
// отсутствие корзины без обращения к Redis.
func (r *cartRepository) Get(key string) (*domain.Cart, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: redis get: %v", domain.ErrStoreUnavailable, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Нечитаемое значение трактуем как отсутствие корзины.
		return nil, nil
	}
	return &cart, nil
}

// CreateIfAbsent создаёт корзину через SETNX. SETNX — единственная точка
// линеаризации: проигравший гонку получает ErrCartAlreadyExists.
func (r *cartRepository) CreateIfAbsent(key string, initial domain.CartItem) (*domain.Cart, error) {
	if key == "" {
		return nil, domain.ErrCartKeyRequired
	}

	cart := domain.Cart{Items: []domain.CartItem{initial}}
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("marshal cart: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	created, err := r.client.SetNX(ctx, key, payload, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis setnx: %v", domain.ErrStoreUnavailable, err)
	}
	if !created {
		return nil, domain.ErrCartAlreadyExists
	}
	return &cart, nil
}

// Overwrite безусловно перезаписывает корзину под ключом.
func (r *cartRepository) Overwrite(key string, cart domain.Cart) (*domain.Cart, error) {
	if key == "" {
		return nil, domain.ErrCartKeyRequired
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("marshal cart: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis set: %v", domain.ErrStoreUnavailable, err)
	}
	return &cart, nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
