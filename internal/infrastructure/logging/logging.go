// Package logging construit le logger slog du bot : tint sur stderr, et les
// erreurs remontées à Sentry quand un DSN est configuré.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

const sentryFlushTimeout = 2 * time.Second

// ParseLevel lit debug, info, warn ou error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// Setup installe le logger par défaut et renvoie la fonction à appeler à
// l'arrêt pour vider la file Sentry.
func Setup(w io.Writer, level slog.Level, sentryDSN string) (flush func(), err error) {
	handlers := []slog.Handler{
		tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.DateTime}),
	}
	flush = func() {}

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			return flush, fmt.Errorf("sentry init: %w", err)
		}
		handlers = append(handlers, SentryHandler(sentry.CurrentHub()))
		flush = func() { sentry.Flush(sentryFlushTimeout) }
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(logger)
	discordgo.Logger = DiscordgoLogger(context.Background(), logger.Handler())
	return flush, nil
}

// SentryHandler remonte à hub les enregistrements de niveau error.
func SentryHandler(hub *sentry.Hub) slog.Handler {
	return slogsentry.Option{Level: slog.LevelError, Hub: hub}.NewSentryHandler()
}

var discordgoLevels = map[int]slog.Level{
	discordgo.LogDebug:         slog.LevelDebug,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogError:         slog.LevelError,
}

// DiscordgoLogger redirige les journaux internes de discordgo vers handler.
func DiscordgoLogger(ctx context.Context, handler slog.Handler) func(msgL, caller int, format string, args ...any) {
	log := slog.New(handler).With("component", "discordgo")
	return func(msgL, _ int, format string, args ...any) {
		level, ok := discordgoLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.LogAttrs(ctx, level, strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " "))
	}
}
