package output

import (
	"context"

	"musterbot/internal/domain/entities"
)

type MemberRepository interface {
	// Upsert renvoie true si le membre n'existait pas.
	Upsert(ctx context.Context, member *entities.Member) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*entities.Member, error)
	FindByStatic(ctx context.Context, static string) (*entities.Member, error)
	List(ctx context.Context) ([]entities.Member, error)
}
