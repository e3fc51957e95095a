package input

import (
	"context"

	"musterbot/internal/domain/entities"
)

// OpenTicketInput porte les champs saisis dans le formulaire.
type OpenTicketInput struct {
	Kind      entities.TicketKind
	Author    entities.Actor
	GuildID   string
	Fields    []entities.TicketField
	OrderType string // commandes uniquement
}

// DecideInput porte le clic d'un modérateur sur approuver / refuser.
type DecideInput struct {
	ButtonID  string
	Moderator entities.Actor
	Reason    string
}

type TicketUseCase interface {
	// CanRequestPromotion vérifie l'éligibilité avant d'ouvrir le formulaire.
	CanRequestPromotion(actor entities.Actor) (current, next int, err error)
	Open(ctx context.Context, in OpenTicketInput) (*entities.Ticket, error)
	// Lookup renvoie la demande et l'action portées par un bouton, après
	// vérification des droits du modérateur.
	Lookup(ctx context.Context, buttonID string, moderator entities.Actor) (*entities.Ticket, entities.DecisionAction, error)
	Decide(ctx context.Context, in DecideInput) (*entities.Decision, error)
}
