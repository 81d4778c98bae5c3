package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trishaguarin/STADVDB-MCO1/internal/clean"
	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/etl"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/internal/warehouse"
)

var (
	etlBatchSize int
	etlWriteMode string
	etlDayFirst  bool
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Extract, transform and load the warehouse",
	Long: `Extract the six operational tables, transform them into the four
star-schema record sets and bulk-load them into the warehouse. The
warehouse tables are dropped and recreated before loading.

Example:
  stadvdb etl --source-connection "postgres://..." --warehouse-connection "postgres://..."`,
	RunE: runETL,
}

func init() {
	etlCmd.Flags().IntVar(&etlBatchSize, "batch-size", 0,
		"rows per insert round trip (default: 5000)")
	etlCmd.Flags().StringVar(&etlWriteMode, "write-mode", "",
		"how to treat existing table data: replace, append, fail")
	etlCmd.Flags().BoolVar(&etlDayFirst, "day-first", false,
		"try day-first date formats before month-first ones")
}

func runETL(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if etlBatchSize > 0 {
		cfg.ETL.BatchSize = etlBatchSize
	}
	if etlWriteMode != "" {
		cfg.ETL.WriteMode = etlWriteMode
	}
	if etlDayFirst {
		cfg.ETL.DayFirst = true
	}

	if err := cfg.ValidateETL(); err != nil {
		return err
	}

	ctx := context.Background()
	sourcePool, err := db.Connect(ctx, cfg.SourceConnection)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	defer sourcePool.Close()

	warehousePool, err := db.Connect(ctx, cfg.WarehouseConnection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse database: %w", err)
	}
	defer warehousePool.Close()

	logging.Info().
		Int("batch_size", cfg.ETL.BatchSize).
		Str("write_mode", cfg.ETL.WriteMode).
		Msg("Starting ETL run")

	pipeline := etl.Pipeline{
		Source:    sourcePool,
		Warehouse: warehousePool,
		BatchSize: cfg.ETL.BatchSize,
		Mode:      warehouse.WriteMode(cfg.ETL.WriteMode),
		Dates:     clean.DateParser{DayFirst: cfg.ETL.DayFirst},
	}
	return pipeline.Run(ctx)
}
