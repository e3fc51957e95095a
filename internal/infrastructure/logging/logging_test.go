package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestDiscordgoLogger(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logf := DiscordgoLogger(context.Background(), h)

	logf(discordgo.LogWarning, 0, "heartbeat %d\nmissed", 3)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="heartbeat 3 missed"`)
	assert.Contains(t, out, "component=discordgo")
}

type captureTransport struct {
	events []*sentry.Event
}

func (c *captureTransport) Configure(sentry.ClientOptions)          {}
func (c *captureTransport) SendEvent(e *sentry.Event)              { c.events = append(c.events, e) }
func (c *captureTransport) Flush(_ time.Duration) bool             { return true }
func (c *captureTransport) FlushWithContext(_ context.Context) bool { return true }
func (c *captureTransport) Close()                                 {}

func TestSentryHandler(t *testing.T) {
	transport := &captureTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: "", Transport: transport})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	log := slog.New(SentryHandler(hub)).With("muster_id", "42")
	log.Warn("ignoré")
	log.Error("❌ Archivage impossible", tint.Err(errors.New("missing access")))

	require.Len(t, transport.events, 1)
	ev := transport.events[0]
	assert.Equal(t, sentry.LevelError, ev.Level)
	assert.Equal(t, "❌ Archivage impossible", ev.Message)
}

func TestSentryHandlerInFanout(t *testing.T) {
	transport := &captureTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: "", Transport: transport})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	var buf bytes.Buffer
	log := slog.New(slogmulti.Fanout(
		tint.NewHandler(&buf, &tint.Options{Level: slog.LevelDebug, NoColor: true}),
		SentryHandler(hub),
	))
	log.Info("✅ Migrations appliquées")
	log.Error("❌ Arrêt sur erreur")

	assert.Contains(t, buf.String(), "Migrations appliquées")
	assert.Contains(t, buf.String(), "Arrêt sur erreur")
	require.Len(t, transport.events, 1)
	assert.Equal(t, "❌ Arrêt sur erreur", transport.events[0].Message)
}
