package cart

import (
	"reflect"
	"testing"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

func catalogFixture() domain.BookMap {
	return domain.NewBookMap([]domain.Book{
		{ID: "b1", Title: "First", PriceMinor: 10, Stock: 10},
		{ID: "b2", Title: "Second", PriceMinor: 15, Stock: 5},
		{ID: "b3", Title: "Third", PriceMinor: 20, Stock: 0},
	})
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name          string
		cart          domain.Cart
		wantSurviving []domain.CartItem
		wantRemoved   []domain.RemovedItem
	}{
		{
			name:          "empty cart",
			cart:          domain.Cart{},
			wantSurviving: []domain.CartItem{},
		},
		{
			name: "all items fit",
			cart: domain.Cart{Items: []domain.CartItem{
				{BookID: "b1", Qty: 4},
				{BookID: "b2", Qty: 3},
			}},
			wantSurviving: []domain.CartItem{
				{BookID: "b1", Qty: 4},
				{BookID: "b2", Qty: 3},
			},
		},
		{
			name: "missing book dropped",
			cart: domain.Cart{Items: []domain.CartItem{
				{BookID: "b1", Qty: 1},
				{BookID: "ghost", Qty: 2},
			}},
			wantSurviving: []domain.CartItem{{BookID: "b1", Qty: 1}},
			wantRemoved: []domain.RemovedItem{
				{BookID: "ghost", Reason: domain.RemovalReasonNotFound},
			},
		},
		{
			name: "over-requested item dropped entirely, not clamped",
			cart: domain.Cart{Items: []domain.CartItem{
				{BookID: "b2", Qty: 6},
			}},
			wantSurviving: []domain.CartItem{},
			wantRemoved: []domain.RemovedItem{
				{BookID: "b2", Reason: domain.RemovalReasonInsufficientStock},
			},
		},
		{
			name: "zero stock drops any quantity",
			cart: domain.Cart{Items: []domain.CartItem{
				{BookID: "b3", Qty: 1},
			}},
			wantSurviving: []domain.CartItem{},
			wantRemoved: []domain.RemovedItem{
				{BookID: "b3", Reason: domain.RemovalReasonInsufficientStock},
			},
		},
		{
			name: "order preserved among survivors",
			cart: domain.Cart{Items: []domain.CartItem{
				{BookID: "b2", Qty: 5},
				{BookID: "ghost", Qty: 1},
				{BookID: "b1", Qty: 10},
			}},
			wantSurviving: []domain.CartItem{
				{BookID: "b2", Qty: 5},
				{BookID: "b1", Qty: 10},
			},
			wantRemoved: []domain.RemovedItem{
				{BookID: "ghost", Reason: domain.RemovalReasonNotFound},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.cart, catalogFixture())
			if !reflect.DeepEqual(got.Surviving, tc.wantSurviving) {
				t.Errorf("surviving = %+v, want %+v", got.Surviving, tc.wantSurviving)
			}
			if !reflect.DeepEqual(got.Removed, tc.wantRemoved) {
				t.Errorf("removed = %+v, want %+v", got.Removed, tc.wantRemoved)
			}
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	books := catalogFixture()
	cart := domain.Cart{Items: []domain.CartItem{
		{BookID: "b1", Qty: 4},
		{BookID: "b2", Qty: 6},
		{BookID: "ghost", Qty: 1},
	}}

	once := Reconcile(cart, books)
	twice := Reconcile(domain.Cart{Items: once.Surviving}, books)

	if !reflect.DeepEqual(once.Surviving, twice.Surviving) {
		t.Fatalf("reconcile is not idempotent: %+v vs %+v", once.Surviving, twice.Surviving)
	}
	if len(twice.Removed) != 0 {
		t.Fatalf("second pass removed items: %+v", twice.Removed)
	}
}

func TestDisplayRows(t *testing.T) {
	books := catalogFixture()
	items := []domain.CartItem{
		{BookID: "b1", Qty: 4},
		{BookID: "b2", Qty: 3},
	}

	rows := DisplayRows(items, books)
	want := []domain.CartItemDisplay{
		{BookID: "b1", Title: "First", PriceMinor: 10, Qty: 4},
		{BookID: "b2", Title: "Second", PriceMinor: 15, Qty: 3},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}
