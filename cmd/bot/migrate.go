package main

import (
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"musterbot/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applique les migrations puis quitte",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, flush, err := setup()
		if err != nil {
			return err
		}
		defer flush()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("❌ Migrations en échec", tint.Err(err))
			return err
		}
		slog.Info("✅ Migrations appliquées", "database", cfg.DatabaseURL)
		return nil
	},
}
