package etl

import (
	"context"
	"fmt"

	"github.com/trishaguarin/STADVDB-MCO1/internal/clean"
	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/internal/source"
	"github.com/trishaguarin/STADVDB-MCO1/internal/warehouse"
)

// Pipeline runs the full reload: extract the six source relations,
// transform them, rebuild the warehouse schema and bulk-load the record
// sets. The schema rebuild happens before any data is written, so a
// failure mid-load leaves the warehouse inconsistent until the next
// successful run.
type Pipeline struct {
	Source    db.Querier
	Warehouse db.Querier
	BatchSize int
	Mode      warehouse.WriteMode
	Dates     clean.DateParser
}

// Run executes the pipeline end to end.
func (p *Pipeline) Run(ctx context.Context) error {
	// Extract
	frames, err := source.ExtractAll(ctx, p.Source)
	if err != nil {
		return err
	}

	// Transform
	t := Transformer{Dates: p.Dates}

	users, err := t.Users(frames["users"])
	if err != nil {
		return fmt.Errorf("failed to transform users: %w", err)
	}
	products, err := t.Products(frames["products"])
	if err != nil {
		return fmt.Errorf("failed to transform products: %w", err)
	}
	riders, err := t.Riders(frames["riders"], frames["couriers"])
	if err != nil {
		return fmt.Errorf("failed to transform riders: %w", err)
	}
	orders, err := t.Orders(frames["orders"], frames["order_items"])
	if err != nil {
		return fmt.Errorf("failed to transform orders: %w", err)
	}
	if err := t.ScrubRiders(orders, riders); err != nil {
		return fmt.Errorf("failed to scrub rider references: %w", err)
	}

	logging.Info().
		Int("users", users.Len()).
		Int("products", products.Len()).
		Int("riders", riders.Len()).
		Int("order_lines", orders.Len()).
		Msg("Transform complete")

	// Rebuild the star schema
	if err := warehouse.DropAll(ctx, p.Warehouse); err != nil {
		return err
	}
	if err := warehouse.CreateAll(ctx, p.Warehouse); err != nil {
		return err
	}

	// Load dimensions before the fact table; the fact table's foreign
	// keys are the backstop if this ordering is ever broken.
	loader := warehouse.NewLoader(p.Warehouse, p.BatchSize)
	if _, err := loader.Load(ctx, users, "dim_users", p.Mode); err != nil {
		return err
	}
	if _, err := loader.Load(ctx, products, "dim_products", p.Mode); err != nil {
		return err
	}
	if _, err := loader.Load(ctx, riders, "dim_riders", p.Mode); err != nil {
		return err
	}
	if _, err := loader.Load(ctx, orders, "fact_orders", p.Mode); err != nil {
		return err
	}

	logging.Info().Msg("Warehouse load complete")
	return nil
}
