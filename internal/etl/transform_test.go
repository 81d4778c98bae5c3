package etl

import (
	"reflect"
	"testing"
	"time"

	"github.com/trishaguarin/STADVDB-MCO1/internal/clean"
	"github.com/trishaguarin/STADVDB-MCO1/internal/frame"
)

func TestUsersEndToEnd(t *testing.T) {
	users := frame.New("users", []string{"id", "username", "gender", "date_of_birth"})
	if err := users.Append(7, "jdoe", "Male", "03/15/1990"); err != nil {
		t.Fatal(err)
	}

	out, err := Transformer{}.Users(users)
	if err != nil {
		t.Fatal(err)
	}

	if out.HasColumn("username") {
		t.Error("username must be dropped")
	}
	if got := out.Value(0, "user_id"); got != 7 {
		t.Errorf("user_id = %v, want 7", got)
	}
	if got := out.Value(0, "gender"); got != "M" {
		t.Errorf("gender = %v, want M", got)
	}
	dob, ok := out.Value(0, "date_of_birth").(time.Time)
	if !ok {
		t.Fatalf("date_of_birth = %v, want time.Time", out.Value(0, "date_of_birth"))
	}
	want := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	if !dob.Equal(want) {
		t.Errorf("date_of_birth = %v, want %v", dob, want)
	}
}

func TestProducts(t *testing.T) {
	products := frame.New("products", []string{"id", "name", "description", "product_code", "category", "price"})
	if err := products.Append(1, "Thing", "junk", "ABC-0001", "toy", "19.99"); err != nil {
		t.Fatal(err)
	}

	out, err := Transformer{}.Products(products)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"product_id", "name", "category", "price"}
	if !reflect.DeepEqual(out.Columns(), want) {
		t.Errorf("Columns = %v, want %v", out.Columns(), want)
	}
	if got := out.Value(0, "category"); got != "Toys" {
		t.Errorf("category = %v, want Toys", got)
	}
}

func TestRidersMerge(t *testing.T) {
	riders := frame.New("riders", []string{"id", "first_name", "courier_id", "age", "gender"})
	for _, row := range [][]any{
		{1, "Ana", 10, 25, "F"},
		{2, "Ben", 99, 30, "M"}, // courier 99 does not exist
	} {
		if err := riders.Append(row...); err != nil {
			t.Fatal(err)
		}
	}
	couriers := frame.New("couriers", []string{"id", "name", "created_at"})
	if err := couriers.Append(10, "FastShip", nil); err != nil {
		t.Fatal(err)
	}

	out, err := Transformer{}.Riders(riders, couriers)
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (dangling rider dropped)", out.Len())
	}
	if out.HasColumn("courier_id") {
		t.Error("courier_id must be dropped after the merge")
	}
	if out.HasColumn("age") || out.HasColumn("gender") {
		t.Error("age and gender must be dropped from riders")
	}
	if got := out.Value(0, "courier_name"); got != "FastShip" {
		t.Errorf("courier_name = %v", got)
	}
}

func TestOrdersFanOut(t *testing.T) {
	orders := frame.New("orders", []string{"id", "order_number", "user_id", "delivery_rider_id", "delivery_date"})
	if err := orders.Append(1, "ORD-000001", 7, 3, "2025-01-05"); err != nil {
		t.Fatal(err)
	}
	items := frame.New("order_items", []string{"id", "order_id", "product_id", "quantity"})
	for _, row := range [][]any{
		{1, 1, 100, 2},
		{2, 1, 101, 1},
		{3, 1, 102, 4},
	} {
		if err := items.Append(row...); err != nil {
			t.Fatal(err)
		}
	}

	out, err := Transformer{}.Orders(orders, items)
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (one row per line item)", out.Len())
	}
	if out.HasColumn("order_number") {
		t.Error("order_number must be dropped")
	}
	for i := 0; i < out.Len(); i++ {
		if out.Value(i, "rider_id") != 3 {
			t.Errorf("row %d: rider_id = %v, want 3", i, out.Value(i, "rider_id"))
		}
		d, ok := out.Value(i, "delivery_date").(time.Time)
		if !ok || d.Year() != 2025 {
			t.Errorf("row %d: delivery_date = %v", i, out.Value(i, "delivery_date"))
		}
	}
}

func TestScrubRidersDetachesDroppedRiders(t *testing.T) {
	// Rider 2's courier is gone, so the merge drops it from the rider
	// dimension. The orders it delivered must not keep pointing at it,
	// or the fact load would violate the rider foreign key.
	riders := frame.New("riders", []string{"id", "first_name", "courier_id", "age", "gender"})
	for _, row := range [][]any{
		{1, "Ana", 10, 25, "F"},
		{2, "Ben", 99, 30, "M"},
	} {
		if err := riders.Append(row...); err != nil {
			t.Fatal(err)
		}
	}
	couriers := frame.New("couriers", []string{"id", "name", "created_at"})
	if err := couriers.Append(10, "FastShip", nil); err != nil {
		t.Fatal(err)
	}

	orders := frame.New("orders", []string{"id", "user_id", "delivery_rider_id", "delivery_date"})
	for _, row := range [][]any{
		{1, 7, 2, "2025-01-05"},
		{2, 8, 1, "2025-01-06"},
	} {
		if err := orders.Append(row...); err != nil {
			t.Fatal(err)
		}
	}
	items := frame.New("order_items", []string{"order_id", "product_id", "quantity"})
	for _, row := range [][]any{
		{1, 100, 2},
		{2, 101, 1},
	} {
		if err := items.Append(row...); err != nil {
			t.Fatal(err)
		}
	}

	tr := Transformer{}
	dim, err := tr.Riders(riders, couriers)
	if err != nil {
		t.Fatal(err)
	}
	facts, err := tr.Orders(orders, items)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.ScrubRiders(facts, dim); err != nil {
		t.Fatal(err)
	}

	if got := facts.Value(0, "rider_id"); got != nil {
		t.Errorf("order 1 rider_id = %v, want nil (rider absent from dimension)", got)
	}
	if got := facts.Value(1, "rider_id"); got != 1 {
		t.Errorf("order 2 rider_id = %v, want 1 (rider survives the merge)", got)
	}
}

func TestOrdersUnparsableDeliveryDate(t *testing.T) {
	orders := frame.New("orders", []string{"id", "user_id", "delivery_rider_id", "delivery_date"})
	if err := orders.Append(1, 7, 3, "unknown"); err != nil {
		t.Fatal(err)
	}
	items := frame.New("order_items", []string{"order_id", "product_id", "quantity"})
	if err := items.Append(1, 100, 2); err != nil {
		t.Fatal(err)
	}

	out, err := Transformer{Dates: clean.DateParser{}}.Orders(orders, items)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Value(0, "delivery_date"); got != nil {
		t.Errorf("delivery_date = %v, want nil for unparsable input", got)
	}
}
