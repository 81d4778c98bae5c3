// Package cli implements the command-line interface for stadvdb.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/trishaguarin/STADVDB-MCO1/internal/config"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/pkg/version"
)

var (
	// Global flags
	cfgFile             string
	sourceConnection    string
	warehouseConnection string
	logLevel            string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "stadvdb",
		Short: "Star-schema warehouse builder and reporting API for e-commerce data",
		Long: `stadvdb moves e-commerce data from an operational PostgreSQL store
into a star-schema warehouse and serves analytical reports over it.

The 'seed' command fills the operational store with generated test data,
'etl' runs the extract-transform-load pipeline into the warehouse,
'optimize' manages the warehouse's secondary indexes, and 'serve' starts
the reporting HTTP API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./stadvdb.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceConnection, "source-connection", "",
		"PostgreSQL connection string for the operational store")
	rootCmd.PersistentFlags().StringVar(&warehouseConnection, "warehouse-connection", "",
		"PostgreSQL connection string for the warehouse")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(etlCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() error {
	// Pick up a local .env before viper reads the environment.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if sourceConnection != "" {
		cfg.SourceConnection = sourceConnection
	}
	if warehouseConnection != "" {
		cfg.WarehouseConnection = warehouseConnection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
