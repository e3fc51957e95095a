package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

const (
	expiryInterval    = 5 * time.Minute
	pingSweepInterval = 30 * time.Second
)

// RunScheduledTasks ferme les rassemblements expirés toutes les 5 minutes et
// supprime les messages d'appel échus toutes les 30 secondes.
func (h *Handler) RunScheduledTasks(ctx context.Context) {
	expiry := time.NewTicker(expiryInterval)
	defer expiry.Stop()
	sweep := time.NewTicker(pingSweepInterval)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-expiry.C:
			h.closeExpired(ctx)
		case <-sweep.C:
			h.sweepPings(ctx)
		}
	}
}

func (h *Handler) closeExpired(ctx context.Context) {
	closed, err := h.musters.CloseExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "❌ Erreur lors de la fermeture des rassemblements expirés", tint.Err(err))
	}
	for _, m := range closed {
		slog.InfoContext(ctx, "⏰ Rassemblement expiré fermé", "muster_id", m.ID, "name", m.Name, "scheduled_at", m.ScheduledAt)
	}
}

func (h *Handler) sweepPings(ctx context.Context) {
	deleted, err := h.pings.SweepDue(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "❌ Erreur lors du nettoyage des appels", tint.Err(err))
	}
	if deleted > 0 {
		slog.DebugContext(ctx, "🧹 Messages d'appel supprimés", "count", deleted)
	}
}
