package output

import (
	"context"

	"musterbot/internal/domain/entities"
)

// ArchiveReason précise pourquoi un rassemblement est archivé.
type ArchiveReason string

const (
	ArchiveClosed  ArchiveReason = "closed"
	ArchiveExpired ArchiveReason = "expired"
)

// MemberDirectory donne accès aux rôles courants d'un membre.
type MemberDirectory interface {
	Roles(ctx context.Context, guildID, userID string) ([]string, error)
}

// MusterBoard affiche les rassemblements sur la plateforme.
type MusterBoard interface {
	// Publish poste le message du rassemblement et renvoie son id, ainsi que
	// l'id du fil de discussion éventuel.
	Publish(ctx context.Context, muster *entities.Muster) (messageID, threadID string, err error)
	// Archive désactive les boutons. domain.ErrMessageGone si le message n'existe plus.
	Archive(ctx context.Context, muster *entities.Muster, reason ArchiveReason) error
	// Check renvoie domain.ErrMessageGone si le message a été supprimé.
	Check(ctx context.Context, muster *entities.Muster) error
}

// TicketDesk gère les salons privés des demandes.
type TicketDesk interface {
	Open(ctx context.Context, ticket *entities.Ticket, guildID string) (channelID, messageID string, err error)
	NotifyAuthor(ctx context.Context, ticket *entities.Ticket) error
	Announce(ctx context.Context, ticket *entities.Ticket, decision *entities.Decision) error
	CloseChannel(ctx context.Context, ticket *entities.Ticket, decision *entities.Decision) error
}

// AfkLog publie les absences.
type AfkLog interface {
	Post(ctx context.Context, notice *entities.AfkNotice) error
}

// PingBoard envoie et supprime les messages d'appel.
type PingBoard interface {
	Send(ctx context.Context, group *entities.PingGroup) (messageID string, err error)
	// Delete renvoie domain.ErrMessageGone si le message n'existe plus.
	Delete(ctx context.Context, channelID, messageID string) error
	Log(ctx context.Context, group *entities.PingGroup) error
}
