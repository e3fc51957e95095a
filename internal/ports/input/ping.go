package input

import (
	"context"

	"musterbot/internal/domain/entities"
)

type SchedulePingInput struct {
	Kind      entities.PingKind
	Title     string
	Time      string
	Creator   entities.Actor
	ChannelID string
}

type PingUseCase interface {
	Schedule(ctx context.Context, in SchedulePingInput) (*entities.PingGroup, error)
	SweepDue(ctx context.Context) (int, error)
}
