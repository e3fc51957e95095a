package discord

import (
	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain/entities"
	pkgdiscord "musterbot/pkg/discord"
)

// HandleModalSubmit route les formulaires en fonction de leur CustomID.
func (h *Handler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID

	if buttonID, ok := pkgdiscord.ParseRejectModal(customID); ok {
		h.handleRejectModal(s, i, buttonID)
		return
	}
	if orderType, ok := pkgdiscord.ParseOrderModal(customID); ok {
		h.submitTicket(s, i, entities.TicketOrder, orderType)
		return
	}
	if kind, ok := pkgdiscord.ParseGroupModal(customID); ok {
		h.handleGroupModal(s, i, kind)
		return
	}
	switch customID {
	case pkgdiscord.ReportModalID:
		h.submitTicket(s, i, entities.TicketReport, "")
	case pkgdiscord.SuggestionModalID:
		h.submitTicket(s, i, entities.TicketSuggestion, "")
	case pkgdiscord.PromotionModalID:
		h.submitTicket(s, i, entities.TicketPromotion, "")
	case pkgdiscord.AfkModalID:
		h.handleAfkModal(s, i)
	}
	// Formulaire inconnu : ignoré.
}
