package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	pkgdiscord "musterbot/pkg/discord"
)

// actorFrom décrit le membre à l'origine de l'interaction.
func actorFrom(i *discordgo.InteractionCreate) entities.Actor {
	m := i.Member
	if m == nil || m.User == nil {
		return entities.Actor{}
	}
	return entities.Actor{
		UserID:      m.User.ID,
		Username:    m.User.Username,
		DisplayName: resolveDisplayName(m),
		RoleIDs:     m.Roles,
		IsAdmin:     m.Permissions&discordgo.PermissionAdministrator != 0,
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Warn("⚠️ Réponse à l'interaction impossible", "interaction_id", i.ID, tint.Err(err))
	}
}

// deferEphemeral accuse réception ; la réponse suit via editResponse.
func deferEphemeral(s *discordgo.Session, i *discordgo.Interaction) bool {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		slog.Warn("⚠️ Accusé de réception impossible", "interaction_id", i.ID, tint.Err(err))
		return false
	}
	return true
}

func editResponse(s *discordgo.Session, i *discordgo.Interaction, content string) {
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}); err != nil {
		slog.Debug("Réponse différée non modifiée", "interaction_id", i.ID, tint.Err(err))
	}
}

func respondModal(s *discordgo.Session, i *discordgo.Interaction, customID, title string, rows []discordgo.MessageComponent) {
	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	}); err != nil {
		slog.Warn("⚠️ Ouverture du formulaire impossible", "modal", customID, tint.Err(err))
	}
}

// errorMessage traduit err ; les erreurs hors domaine sont journalisées et
// remplacées par le message générique.
func (h *Handler) errorMessage(ctx context.Context, err error, attrs ...any) string {
	if domain.Code(err) == "" {
		slog.ErrorContext(ctx, "❌ Erreur lors du traitement de l'interaction", append(attrs, tint.Err(err))...)
	}
	return h.tx.Get(pkgdiscord.ErrorKey(err))
}

func (h *Handler) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondEphemeral(s, i.Interaction, h.errorMessage(ctx, err, "interaction_id", i.ID))
}

func (h *Handler) editError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	editResponse(s, i.Interaction, h.errorMessage(ctx, err, "interaction_id", i.ID))
}
