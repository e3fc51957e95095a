package output

import (
	"context"
	"time"

	"musterbot/internal/domain/entities"
)

type PingRepository interface {
	SaveMessages(ctx context.Context, messages []entities.PingMessage) error
	// Due renvoie les messages dont l'heure de suppression est atteinte.
	Due(ctx context.Context, now time.Time) ([]entities.PingMessage, error)
	DeleteMessage(ctx context.Context, messageID string) error
}
