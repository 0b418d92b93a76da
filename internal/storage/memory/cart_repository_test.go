package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/memory"
)

func TestCartRepository_GetEmptyKey(t *testing.T) {
	repo := memory.NewCartRepository()

	cart, err := repo.Get("")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cart != nil {
		t.Fatal("expected nil cart for empty key")
	}
}

func TestCartRepository_GetAbsent(t *testing.T) {
	repo := memory.NewCartRepository()

	cart, err := repo.Get("missing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cart != nil {
		t.Fatal("expected nil cart for absent key")
	}
}

func TestCartRepository_CreateIfAbsent(t *testing.T) {
	repo := memory.NewCartRepository()
	initial := domain.CartItem{BookID: "b1", Qty: 3}

	created, err := repo.CreateIfAbsent("cart-1", initial)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created.Items) != 1 || created.Items[0] != initial {
		t.Fatalf("unexpected cart contents: %+v", created.Items)
	}

	stored, err := repo.Get("cart-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored == nil || len(stored.Items) != 1 {
		t.Fatalf("unexpected stored cart: %+v", stored)
	}
}

func TestCartRepository_CreateIfAbsentConflict(t *testing.T) {
	repo := memory.NewCartRepository()
	initial := domain.CartItem{BookID: "b1", Qty: 1}

	if _, err := repo.CreateIfAbsent("cart-1", initial); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := repo.CreateIfAbsent("cart-1", initial)
	if !errors.Is(err, domain.ErrCartAlreadyExists) {
		t.Fatalf("expected ErrCartAlreadyExists, got %v", err)
	}
}

func TestCartRepository_CreateIfAbsentEmptyKey(t *testing.T) {
	repo := memory.NewCartRepository()

	_, err := repo.CreateIfAbsent("", domain.CartItem{BookID: "b1", Qty: 1})
	if !errors.Is(err, domain.ErrCartKeyRequired) {
		t.Fatalf("expected ErrCartKeyRequired, got %v", err)
	}
}

func TestCartRepository_Overwrite(t *testing.T) {
	repo := memory.NewCartRepository()

	if _, err := repo.CreateIfAbsent("cart-1", domain.CartItem{BookID: "b1", Qty: 1}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	next := domain.Cart{Items: []domain.CartItem{
		{BookID: "b1", Qty: 2},
		{BookID: "b2", Qty: 1},
	}}
	if _, err := repo.Overwrite("cart-1", next); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	stored, err := repo.Get("cart-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}

	// Мутация возвращённой корзины не должна протекать в хранилище.
	stored.Items[0].Qty = 99
	again, err := repo.Get("cart-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Items[0].Qty != 2 {
		t.Fatalf("stored cart mutated: qty=%d", again.Items[0].Qty)
	}
}

func TestCartRepository_OverwriteEmptyKey(t *testing.T) {
	repo := memory.NewCartRepository()

	_, err := repo.Overwrite("", domain.Cart{})
	if !errors.Is(err, domain.ErrCartKeyRequired) {
		t.Fatalf("expected ErrCartKeyRequired, got %v", err)
	}
}
