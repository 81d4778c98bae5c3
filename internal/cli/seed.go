package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/internal/source"
)

var (
	seedUsers    int
	seedProducts int
	seedCouriers int
	seedRiders   int
	seedOrders   int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the operational store with generated test data",
	Long: `Drop and recreate the six operational tables, then fill them with
generated data. The generated rows are deliberately messy in the same
ways real operational data is: mixed gender spellings, inconsistent
category names, dates in several formats and the occasional dangling
reference.

Example:
  stadvdb seed --users 10000 --orders 50000 --source-connection "postgres://..."`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", 0,
		"number of users to generate (default: 5000)")
	seedCmd.Flags().IntVar(&seedProducts, "products", 0,
		"number of products to generate (default: 1000)")
	seedCmd.Flags().IntVar(&seedCouriers, "couriers", 0,
		"number of couriers to generate (default: 20)")
	seedCmd.Flags().IntVar(&seedRiders, "riders", 0,
		"number of riders to generate (default: 500)")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0,
		"number of orders to generate (default: 20000)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedUsers > 0 {
		cfg.Seed.Users = seedUsers
	}
	if seedProducts > 0 {
		cfg.Seed.Products = seedProducts
	}
	if seedCouriers > 0 {
		cfg.Seed.Couriers = seedCouriers
	}
	if seedRiders > 0 {
		cfg.Seed.Riders = seedRiders
	}
	if seedOrders > 0 {
		cfg.Seed.Orders = seedOrders
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	logging.Info().
		Int("users", cfg.Seed.Users).
		Int("products", cfg.Seed.Products).
		Int("orders", cfg.Seed.Orders).
		Msg("Seeding operational store")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.SourceConnection)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	defer pool.Close()

	if err := source.NewSeeder(cfg.Seed).Run(ctx, pool); err != nil {
		return err
	}

	logging.Info().Msg("Seed complete")
	return nil
}
