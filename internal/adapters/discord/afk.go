package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
	pkgdiscord "musterbot/pkg/discord"
)

const (
	fieldHours     = "hours"
	fieldAfkReason = "reason"
)

var _ output.AfkLog = (*AfkLog)(nil)

// AfkLog publie les absences dans le salon de journal AFK.
type AfkLog struct {
	session   *discordgo.Session
	tx        pkgdiscord.Texts
	channelID string
}

func (l *AfkLog) Post(ctx context.Context, n *entities.AfkNotice) error {
	if l.channelID == "" {
		slog.DebugContext(ctx, "Journal AFK non configuré", "user_id", n.UserID)
		return nil
	}
	if _, err := l.session.ChannelMessageSendEmbed(l.channelID, pkgdiscord.AfkEmbed(l.tx, n), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("post afk embed: %w", err)
	}
	return nil
}

func (h *Handler) handleAfkButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondModal(s, i.Interaction, pkgdiscord.AfkModalID, h.tx.Get("afk.modal.title"), pkgdiscord.ModalRows(
		pkgdiscord.TextInput{
			ID:          fieldHours,
			Label:       h.tx.Get("afk.modal.hours"),
			Placeholder: h.tx.Get("afk.modal.hours_placeholder"),
			Required:    true,
			MaxLength:   3,
		},
		pkgdiscord.TextInput{
			ID:          fieldAfkReason,
			Label:       h.tx.Get("afk.modal.reason"),
			Placeholder: h.tx.Get("afk.modal.reason_placeholder"),
			Paragraph:   true,
			Required:    true,
			MaxLength:   500,
		},
	))
}

func (h *Handler) handleAfkModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	values := pkgdiscord.ModalValues(i.ModalSubmitData())
	actor := actorFrom(i)

	n, err := h.afk.Mark(ctx, actor, values[fieldHours], values[fieldAfkReason])
	if err != nil {
		h.respondError(ctx, s, i, err)
		return
	}
	slog.InfoContext(ctx, "💤 Absence enregistrée", "user_id", n.UserID, "hours", n.Hours)
	respondEphemeral(s, i.Interaction, h.tx.Get("afk.reply.done"))
}
