package domain

import "testing"

func TestCartBookIDs(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{BookID: "b1", Qty: 2},
		{BookID: "b2", Qty: 1},
		{BookID: "b3", Qty: 4},
	}}

	ids := cart.BookIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	// Порядок добавления должен сохраняться.
	want := []string{"b1", "b2", "b3"}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, id, want[i])
		}
	}
}

func TestCartValidate(t *testing.T) {
	tests := []struct {
		name     string
		cart     Cart
		wantErrs int
	}{
		{name: "empty cart", cart: Cart{}, wantErrs: 0},
		{
			name:     "valid items",
			cart:     Cart{Items: []CartItem{{BookID: "b1", Qty: 1}}},
			wantErrs: 0,
		},
		{
			name:     "missing book id",
			cart:     Cart{Items: []CartItem{{BookID: "", Qty: 1}}},
			wantErrs: 1,
		},
		{
			name:     "zero qty",
			cart:     Cart{Items: []CartItem{{BookID: "b1", Qty: 0}}},
			wantErrs: 1,
		},
		{
			name:     "both invalid",
			cart:     Cart{Items: []CartItem{{BookID: "", Qty: -1}}},
			wantErrs: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cart.Validate(); len(got) != tc.wantErrs {
				t.Fatalf("expected %d errors, got %d: %v", tc.wantErrs, len(got), got)
			}
		})
	}
}

func TestNewBookMap(t *testing.T) {
	books := []Book{
		{ID: "b1", Title: "First", PriceMinor: 100, Stock: 3},
		{ID: "b2", Title: "Second", PriceMinor: 250, Stock: 0},
	}

	m := NewBookMap(books)
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	if m["b1"].Title != "First" {
		t.Errorf("unexpected title for b1: %s", m["b1"].Title)
	}
	if _, ok := m["missing"]; ok {
		t.Error("missing id should not be present")
	}
}
