package output

import (
	"context"

	"musterbot/internal/domain/entities"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *entities.Ticket) error
	// FindByButtonID cherche par bouton d'approbation ou de refus.
	FindByButtonID(ctx context.Context, buttonID string) (*entities.Ticket, error)
	Delete(ctx context.Context, messageID string) error
	AppendDecision(ctx context.Context, decision *entities.Decision) error
	ListDecisions(ctx context.Context, messageID string) ([]entities.Decision, error)
}
