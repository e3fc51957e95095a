package input

import (
	"context"

	"musterbot/internal/domain/entities"
)

// StaticMatch associe un statique de jeu au membre trouvé (nil sinon).
type StaticMatch struct {
	Static string
	Member *entities.Member
}

type MemberUseCase interface {
	Sync(ctx context.Context, members []entities.Member) (added, updated int, err error)
	Upsert(ctx context.Context, id, displayName string) error
	Remove(ctx context.Context, id string) (bool, error)
	FindByStatic(ctx context.Context, static string) (*entities.Member, error)
	ResolveStatics(ctx context.Context, text string) ([]StaticMatch, error)
}
