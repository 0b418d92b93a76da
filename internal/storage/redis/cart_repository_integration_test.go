package redis

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

const defaultLocalIntegrationURL = "redis://localhost:6379/0"

func openRedisStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	candidates := []string{
		strings.TrimSpace(os.Getenv("BOOKSTORE_REDIS_TEST_URL")),
		strings.TrimSpace(os.Getenv("BOOKSTORE_REDIS_URL")),
		defaultLocalIntegrationURL,
	}

	var openErrs []string
	for _, url := range candidates {
		if url == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		store, err := Open(ctx, url)
		cancel()
		if err == nil {
			t.Cleanup(func() {
				_ = store.Close()
			})
			return store
		}
		openErrs = append(openErrs, url+": "+err.Error())
	}

	t.Skipf("redis is not reachable for integration test: %s", strings.Join(openErrs, "; "))
	return nil
}

func TestCartRepository_RedisRoundTrip(t *testing.T) {
	store := openRedisStoreForIntegrationTest(t)
	repo := NewCartRepository(store)

	key := "it-cart-" + uuid.NewString()
	initial := domain.CartItem{BookID: "b1", Qty: 3}

	created, err := repo.CreateIfAbsent(key, initial)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Items) != 1 || created.Items[0] != initial {
		t.Fatalf("unexpected created cart: %+v", created)
	}

	got, err := repo.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Items) != 1 || got.Items[0] != initial {
		t.Fatalf("unexpected stored cart: %+v", got)
	}

	next := domain.Cart{Items: []domain.CartItem{
		{BookID: "b1", Qty: 3},
		{BookID: "b2", Qty: 1},
	}}
	if _, err := repo.Overwrite(key, next); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err = repo.Get(key)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
}

func TestCartRepository_RedisCreateConflict(t *testing.T) {
	store := openRedisStoreForIntegrationTest(t)
	repo := NewCartRepository(store)

	key := "it-cart-" + uuid.NewString()
	initial := domain.CartItem{BookID: "b1", Qty: 1}

	if _, err := repo.CreateIfAbsent(key, initial); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.CreateIfAbsent(key, initial); !errors.Is(err, domain.ErrCartAlreadyExists) {
		t.Fatalf("expected ErrCartAlreadyExists, got %v", err)
	}
}

func TestCartRepository_RedisEmptyKeyShortCircuit(t *testing.T) {
	store := openRedisStoreForIntegrationTest(t)
	repo := NewCartRepository(store)

	cart, err := repo.Get("")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart != nil {
		t.Fatal("expected nil cart for empty key")
	}
}
