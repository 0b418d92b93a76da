package catalog

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

func TestHasEnoughStock(t *testing.T) {
	tests := []struct {
		name   string
		bookID string
		qty    int32
		want   bool
	}{
		{name: "enough stock", bookID: "b1", qty: 3, want: true},
		{name: "exact stock", bookID: "b1", qty: 5, want: true},
		{name: "not enough stock", bookID: "b1", qty: 6, want: false},
		{name: "unknown book", bookID: "ghost", qty: 1, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := NewMockGateway(domain.Book{ID: "b1", Title: "First", PriceMinor: 100, Stock: 5})
			svc := NewService(gw, nil)

			got, err := svc.HasEnoughStock(tc.bookID, tc.qty)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HasEnoughStock(%s, %d) = %v, want %v", tc.bookID, tc.qty, got, tc.want)
			}
			if gw.FetchOneCalls != 1 {
				t.Fatalf("expected 1 gateway call, got %d", gw.FetchOneCalls)
			}
		})
	}
}

func TestHasEnoughStock_GatewayError(t *testing.T) {
	gw := NewMockGateway()
	gw.FetchOneErr = domain.ErrCatalogUnavailable
	svc := NewService(gw, nil)

	_, err := svc.HasEnoughStock("b1", 1)
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestBooksByIDs(t *testing.T) {
	gw := NewMockGateway(
		domain.Book{ID: "b1", Title: "First", PriceMinor: 100, Stock: 5},
		domain.Book{ID: "b2", Title: "Second", PriceMinor: 200, Stock: 2},
	)
	svc := NewService(gw, nil)

	books, err := svc.BooksByIDs([]string{"b1", "ghost", "b2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
}

func TestDefaultBooks_Limit(t *testing.T) {
	books := make([]domain.Book, 0, 25)
	for i := 0; i < 25; i++ {
		books = append(books, domain.Book{ID: string(rune('a' + i)), Stock: 1})
	}
	gw := NewMockGateway(books...)
	svc := NewService(gw, nil)

	got, err := svc.DefaultBooks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > 20 {
		t.Fatalf("expected at most 20 books, got %d", len(got))
	}
	if gw.DefaultBooksCalls != 1 {
		t.Fatalf("expected 1 gateway call, got %d", gw.DefaultBooksCalls)
	}
}
