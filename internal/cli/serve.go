package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trishaguarin/STADVDB-MCO1/internal/api"
	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/reports"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reporting HTTP API",
	Long: `Start the HTTP server that exposes the analytical reports over the
warehouse. The server runs until interrupted.

Example:
  stadvdb serve --listen :5000 --warehouse-connection "postgres://..."`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"address to bind the HTTP server to (default: :5000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListen != "" {
		cfg.Serve.Listen = serveListen
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.WarehouseConnection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse database: %w", err)
	}
	defer pool.Close()

	server := api.NewServer(reports.NewClient(pool), cfg.Serve.Listen)
	return server.Run()
}
