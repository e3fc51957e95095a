package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"musterbot/internal/config"
	"musterbot/internal/infrastructure/logging"
)

var rootCmd = &cobra.Command{
	Use:           "musterbot",
	Short:         "Bot Discord de rassemblements, demandes et appels de groupe",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBot,
}

func init() {
	rootCmd.AddCommand(runCmd, migrateCmd)
}

// setup charge la configuration et installe le logger global. flush vide
// les événements Sentry en attente.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Configuration invalide:", err)
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Niveau de log invalide:", err)
		return nil, nil, err
	}
	flush, err := logging.Setup(os.Stderr, level, cfg.SentryDSN)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Initialisation des logs impossible:", err)
		return nil, nil, err
	}
	slog.Debug("Configuration chargée", "database", cfg.DatabaseURL, "locale", cfg.Locale, "timezone", cfg.Timezone)
	return cfg, flush, nil
}
