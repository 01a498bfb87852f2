package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/weightrack/internal/config"
	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/xslog"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations to the configured store",
		Long:  "Opens the store selected by STORE_DRIVER, which applies any pending migrations. Only sqlite and postgres have migrations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			storeCfg, err := cfg.StoreConfig()
			if err != nil {
				return err
			}

			switch storeCfg.Driver {
			case storage.DriverSQLite, storage.DriverPostgres:
			default:
				fmt.Printf("No migrations for the %s driver\n", storeCfg.Driver)
				return nil
			}

			logger := xslog.NewLogger(os.Stderr, cfg.Level())
			store, err := storage.Open(ctx, logger, storeCfg)
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}

			fmt.Println("Migrations applied successfully")
			return nil
		},
	}
}
