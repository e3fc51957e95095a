package input

import (
	"context"

	"musterbot/internal/domain/entities"
)

type AfkUseCase interface {
	Mark(ctx context.Context, actor entities.Actor, hours, reason string) (*entities.AfkNotice, error)
}
