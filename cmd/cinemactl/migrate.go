package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-tickets/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(cmd.Context(), a.db); err != nil {
				return err
			}
			zap.L().Info("schema up to date", zap.String("db", a.cfg.DBName))
			return nil
		},
	}
}
