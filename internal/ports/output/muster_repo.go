package output

import (
	"context"
	"time"

	"musterbot/internal/domain/entities"
)

// MusterRepository persiste les rassemblements, indexés par leur clé opaque.
type MusterRepository interface {
	// Save insère ou remplace le rassemblement et ses deux listes.
	Save(ctx context.Context, muster *entities.Muster) error
	// FindByID renvoie domain.ErrMusterNotFound si la clé est inconnue.
	FindByID(ctx context.Context, id string) (*entities.Muster, error)
	List(ctx context.Context) ([]entities.Muster, error)
	Delete(ctx context.Context, id string) error
	DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}
