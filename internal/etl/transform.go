// Package etl orchestrates the extract, transform and load phases that
// turn the operational tables into the warehouse star schema.
package etl

import (
	"fmt"

	"github.com/trishaguarin/STADVDB-MCO1/internal/clean"
	"github.com/trishaguarin/STADVDB-MCO1/internal/frame"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// Transformer applies the rename, drop, merge and normalize rules that
// reconcile the source relations with the warehouse schema.
type Transformer struct {
	Dates clean.DateParser
}

// Users produces the dim_users record set: the surrogate username is
// dropped, gender and date of birth are normalized.
func (t Transformer) Users(users *frame.Frame) (*frame.Frame, error) {
	users.Rename(map[string]string{"id": "user_id"})
	users.Drop("username")
	if err := users.Apply("gender", clean.Gender); err != nil {
		return nil, err
	}
	if err := users.Apply("date_of_birth", t.Dates.Value); err != nil {
		return nil, err
	}
	return users, nil
}

// Products produces the dim_products record set with categories drawn
// from the canonical vocabulary.
func (t Transformer) Products(products *frame.Frame) (*frame.Frame, error) {
	products.Rename(map[string]string{"id": "product_id"})
	products.Drop("description", "product_code")
	if err := products.Apply("category", clean.Category); err != nil {
		return nil, err
	}
	return products, nil
}

// Riders produces the dim_riders record set. The courier relation is
// flattened into the rider by name; after the join the courier key is
// dropped, so two couriers sharing a display name become
// indistinguishable downstream.
func (t Transformer) Riders(riders, couriers *frame.Frame) (*frame.Frame, error) {
	riders.Rename(map[string]string{"id": "rider_id"})
	riders.Drop("age", "gender")
	couriers.Rename(map[string]string{"id": "courier_id", "name": "courier_name"})

	names, err := couriers.Pick("courier_id", "courier_name")
	if err != nil {
		return nil, err
	}
	merged, err := riders.InnerJoin(names, "courier_id")
	if err != nil {
		return nil, fmt.Errorf("failed to merge riders with couriers: %w", err)
	}
	merged.Drop("courier_id")

	if dropped := riders.Len() - merged.Len(); dropped > 0 {
		logging.Warn().
			Int("dropped", dropped).
			Msg("Riders without a matching courier were excluded")
	}
	return merged, nil
}

// ScrubRiders nulls out fact rider references that are absent from the
// rider dimension. The courier merge drops riders whose courier is
// gone, but the orders those riders delivered are still facts; without
// this step the fact load would trip the rider foreign key.
func (t Transformer) ScrubRiders(facts, riders *frame.Frame) error {
	known := make(map[string]struct{}, riders.Len())
	for i := 0; i < riders.Len(); i++ {
		known[fmt.Sprintf("%v", riders.Value(i, "rider_id"))] = struct{}{}
	}

	detached := 0
	err := facts.Apply("rider_id", func(v any) any {
		if v == nil {
			return nil
		}
		if _, ok := known[fmt.Sprintf("%v", v)]; ok {
			return v
		}
		detached++
		return nil
	})
	if err != nil {
		return err
	}
	if detached > 0 {
		logging.Warn().
			Int("order_lines", detached).
			Msg("Order lines referencing an unknown rider were detached")
	}
	return nil
}

// Orders produces the fact_orders record set at line-item grain: an
// order with K items fans out to K rows.
func (t Transformer) Orders(orders, items *frame.Frame) (*frame.Frame, error) {
	orders.Rename(map[string]string{"id": "order_id", "delivery_rider_id": "rider_id"})
	orders.Drop("order_number")

	lines, err := items.Pick("order_id", "product_id", "quantity")
	if err != nil {
		return nil, err
	}
	merged, err := orders.InnerJoin(lines, "order_id")
	if err != nil {
		return nil, fmt.Errorf("failed to merge orders with order items: %w", err)
	}
	if err := merged.Apply("delivery_date", t.Dates.Value); err != nil {
		return nil, err
	}
	return merged, nil
}
