package frame

import (
	"reflect"
	"testing"
)

func mustAppend(t *testing.T, f *Frame, values ...any) {
	t.Helper()
	if err := f.Append(values...); err != nil {
		t.Fatal(err)
	}
}

func TestAppendArity(t *testing.T) {
	f := New("users", []string{"id", "name"})
	if err := f.Append(1); err == nil {
		t.Error("Expected error for wrong value count")
	}
	mustAppend(t, f, 1, "ana")
	if f.Len() != 1 {
		t.Errorf("Len = %d, want 1", f.Len())
	}
}

func TestRename(t *testing.T) {
	f := New("orders", []string{"id", "user_id", "delivery_rider_id"})
	mustAppend(t, f, 1, 7, 3)

	f.Rename(map[string]string{"id": "order_id", "delivery_rider_id": "rider_id"})

	want := []string{"order_id", "user_id", "rider_id"}
	if !reflect.DeepEqual(f.Columns(), want) {
		t.Errorf("Columns = %v, want %v", f.Columns(), want)
	}
	if f.Value(0, "order_id") != 1 {
		t.Errorf("order_id = %v, want 1", f.Value(0, "order_id"))
	}
}

func TestRenameMissingIsNoop(t *testing.T) {
	f := New("users", []string{"id"})
	f.Rename(map[string]string{"nope": "user_id"})
	if !reflect.DeepEqual(f.Columns(), []string{"id"}) {
		t.Errorf("Columns = %v", f.Columns())
	}
}

func TestRenameCollisionLastWins(t *testing.T) {
	f := New("users", []string{"id", "user_id"})
	mustAppend(t, f, 1, 99)

	// Renaming id onto an occupied name displaces the old column.
	f.Rename(map[string]string{"id": "user_id"})

	if !reflect.DeepEqual(f.Columns(), []string{"user_id"}) {
		t.Errorf("Columns = %v, want [user_id]", f.Columns())
	}
	if f.Value(0, "user_id") != 1 {
		t.Errorf("user_id = %v, want 1 (renamed column wins)", f.Value(0, "user_id"))
	}
}

func TestDrop(t *testing.T) {
	f := New("products", []string{"id", "description", "price"})
	mustAppend(t, f, 1, "d", "9.99")

	f.Drop("description", "not_a_column")

	if !reflect.DeepEqual(f.Columns(), []string{"id", "price"}) {
		t.Errorf("Columns = %v", f.Columns())
	}
	if f.Len() != 1 {
		t.Errorf("Drop changed row count: %d", f.Len())
	}
}

func TestApply(t *testing.T) {
	f := New("users", []string{"gender"})
	mustAppend(t, f, "Male")
	mustAppend(t, f, nil)

	err := f.Apply("gender", func(v any) any {
		if v == nil {
			return nil
		}
		return "M"
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.Value(0, "gender") != "M" {
		t.Errorf("gender = %v", f.Value(0, "gender"))
	}
	if f.Value(1, "gender") != nil {
		t.Errorf("nil not preserved: %v", f.Value(1, "gender"))
	}

	if err := f.Apply("missing", func(v any) any { return v }); err == nil {
		t.Error("Expected error applying to a missing column")
	}
}

func TestInnerJoinFanOut(t *testing.T) {
	orders := New("orders", []string{"order_id", "user_id"})
	mustAppend(t, orders, 1, 7)

	items := New("order_items", []string{"order_id", "product_id", "quantity"})
	mustAppend(t, items, 1, 100, 2)
	mustAppend(t, items, 1, 101, 1)
	mustAppend(t, items, 1, 102, 5)

	merged, err := orders.InnerJoin(items, "order_id")
	if err != nil {
		t.Fatal(err)
	}

	// One order with 3 line items yields exactly 3 rows
	if merged.Len() != 3 {
		t.Fatalf("Len = %d, want 3", merged.Len())
	}
	want := []string{"order_id", "user_id", "product_id", "quantity"}
	if !reflect.DeepEqual(merged.Columns(), want) {
		t.Errorf("Columns = %v, want %v", merged.Columns(), want)
	}
	for i := 0; i < merged.Len(); i++ {
		if merged.Value(i, "user_id") != 7 {
			t.Errorf("row %d: user_id = %v, want shared order fields", i, merged.Value(i, "user_id"))
		}
	}
	products := map[any]bool{}
	for i := 0; i < merged.Len(); i++ {
		products[merged.Value(i, "product_id")] = true
	}
	if len(products) != 3 {
		t.Errorf("expected 3 distinct product_ids, got %v", products)
	}
}

func TestInnerJoinDropsUnmatched(t *testing.T) {
	riders := New("riders", []string{"rider_id", "courier_id"})
	mustAppend(t, riders, 1, 10)
	mustAppend(t, riders, 2, 99) // dangling courier reference

	couriers := New("couriers", []string{"courier_id", "courier_name"})
	mustAppend(t, couriers, 10, "FastShip")

	merged, err := riders.InnerJoin(couriers, "courier_id")
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (unmatched rider dropped)", merged.Len())
	}
	if merged.Value(0, "rider_id") != 1 {
		t.Errorf("rider_id = %v, want 1", merged.Value(0, "rider_id"))
	}
	if merged.Value(0, "courier_name") != "FastShip" {
		t.Errorf("courier_name = %v", merged.Value(0, "courier_name"))
	}
}

func TestInnerJoinMissingKey(t *testing.T) {
	a := New("a", []string{"x"})
	b := New("b", []string{"y"})
	if _, err := a.InnerJoin(b, "x"); err == nil {
		t.Error("Expected error for key missing on right side")
	}
}

func TestPick(t *testing.T) {
	f := New("order_items", []string{"id", "order_id", "product_id", "quantity"})
	mustAppend(t, f, 1, 10, 100, 2)

	picked, err := f.Pick("order_id", "product_id", "quantity")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(picked.Columns(), []string{"order_id", "product_id", "quantity"}) {
		t.Errorf("Columns = %v", picked.Columns())
	}
	if picked.Value(0, "quantity") != 2 {
		t.Errorf("quantity = %v", picked.Value(0, "quantity"))
	}

	if _, err := f.Pick("nope"); err == nil {
		t.Error("Expected error for unknown column")
	}
}
