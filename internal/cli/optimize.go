package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/internal/warehouse"
)

var optimizeDrop bool

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Create the warehouse's secondary indexes",
	Long: `Create the secondary indexes that back the reporting queries.
Indexes that already exist are skipped. With --drop, the indexes are
dropped instead, which is useful before a large append-mode load.

Example:
  stadvdb optimize --warehouse-connection "postgres://..."`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeDrop, "drop", false,
		"drop the secondary indexes instead of creating them")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateWarehouse(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.WarehouseConnection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse database: %w", err)
	}
	defer pool.Close()

	if optimizeDrop {
		if err := warehouse.DropIndexes(ctx, pool); err != nil {
			return err
		}
		logging.Info().Msg("Indexes dropped")
		return nil
	}

	if err := warehouse.CreateIndexes(ctx, pool); err != nil {
		return err
	}
	logging.Info().Msg("Indexes ready")
	return nil
}
