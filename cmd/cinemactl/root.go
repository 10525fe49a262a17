package main

import (
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-tickets/internal/config"
	"github.com/iliyamo/cinema-tickets/internal/database"
	"github.com/iliyamo/cinema-tickets/internal/logger"
)

// app is filled by the root command before any subcommand runs.
type app struct {
	cfg config.Config
	db  *sql.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cinemactl",
		Short:         "Cinema ticket operations",
		Long:          `Migrate the schema, load sample data and inspect reservations from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Env); err != nil {
				return err
			}
			db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return err
			}
			a.cfg, a.db = cfg, db
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				if err := a.db.Close(); err != nil {
					zap.L().Warn("close database", zap.Error(err))
				}
			}
			logger.Sync()
		},
	}
	root.AddCommand(newMigrateCmd(a), newSeedCmd(a), newTicketsCmd(a))
	return root
}
