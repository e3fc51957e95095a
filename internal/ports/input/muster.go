package input

import (
	"context"

	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
)

// CreateMusterInput regroupe les paramètres de la commande de création.
type CreateMusterInput struct {
	Name      string
	DateTime  string // JJ.MM.AAAA HH:MM
	Slots     int
	Creator   entities.Actor
	GuildID   string
	ChannelID string
}

type MusterUseCase interface {
	Create(ctx context.Context, in CreateMusterInput) (*entities.Muster, error)
	Get(ctx context.Context, id string) (*entities.Muster, error)
	List(ctx context.Context) ([]entities.Muster, error)
	Join(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error)
	JoinOverflow(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error)
	Leave(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error)
	Close(ctx context.Context, id string, actor entities.Actor) error
	CloseExpired(ctx context.Context) ([]entities.Muster, error)
	Restore(ctx context.Context) (int, error)
}
