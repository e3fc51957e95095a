package main

import (
	"fmt"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"musterbot/internal/adapters/discord"
	"musterbot/internal/adapters/httpapi"
	"musterbot/internal/infrastructure/database"
	"musterbot/internal/infrastructure/i18n"
	"musterbot/pkg/tz"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Démarre le bot, le planificateur et l'API de statut",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	ctx := cmd.Context()
	err = func() error {
		loc, err := tz.Load(cfg.Timezone)
		if err != nil {
			return err
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		store, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer store.Close()

		bot, err := discord.NewBot(cfg, store, i18n.NewTranslator(cfg.Locale), loc)
		if err != nil {
			return fmt.Errorf("bot: %w", err)
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return bot.Start(ctx) })
		g.Go(func() error { return bot.RunScheduler(ctx) })
		if cfg.HTTPAddr != "" {
			api := httpapi.NewServer(cfg.HTTPAddr, bot.Musters(), bot.Members())
			g.Go(func() error { return api.Run(ctx) })
		}
		return g.Wait()
	}()
	if err != nil {
		slog.Error("❌ Arrêt sur erreur", tint.Err(err))
	}
	return err
}
