package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
	pkgdiscord "musterbot/pkg/discord"
)

const (
	fieldGroupName = "name"
	fieldGroupTime = "time"
)

// Emoji des boutons du panneau d'appels.
var groupEmoji = map[entities.PingKind]string{
	entities.PingWorkshop: "🏭",
	entities.PingSupply:   "📦",
	entities.PingDrop:     "💰",
	entities.PingDealers:  "💊",
	entities.PingCustom:   "✏️",
}

var _ output.PingBoard = (*PingBoard)(nil)

// PingBoard envoie les messages d'appel mentionnant le rôle RAVE.
type PingBoard struct {
	session    *discordgo.Session
	tx         pkgdiscord.Texts
	raveRole   string
	logChannel string
}

func (b *PingBoard) Send(ctx context.Context, g *entities.PingGroup) (string, error) {
	msg, err := b.session.ChannelMessageSendComplex(g.ChannelID, &discordgo.MessageSend{
		Content:         pingContent(b.tx, b.raveRole, g),
		AllowedMentions: &discordgo.MessageAllowedMentions{Roles: nonEmpty(b.raveRole)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (b *PingBoard) Delete(ctx context.Context, channelID, messageID string) error {
	err := b.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	if pkgdiscord.IsGone(err) {
		return domain.ErrMessageGone
	}
	return err
}

func (b *PingBoard) Log(ctx context.Context, g *entities.PingGroup) error {
	if b.logChannel == "" {
		return nil
	}
	line := b.tx.Get("group.log", map[string]any{
		"User":  "<@" + g.CreatorID + ">",
		"Title": g.Title,
		"Time":  g.Time,
	})
	_, err := b.session.ChannelMessageSendComplex(b.logChannel, &discordgo.MessageSend{
		Content:         line,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("post group log: %w", err)
	}
	return nil
}

// pingContent : "<@&RAVE> Групп <titre> <heure>", sans le mot "Групп" pour un MP libre.
func pingContent(tx pkgdiscord.Texts, raveRole string, g *entities.PingGroup) string {
	key := "group.ping.preset"
	if g.Kind == entities.PingCustom {
		key = "group.ping.custom"
	}
	return tx.Get(key, map[string]any{
		"Mention": roleMentions(nonEmpty(raveRole)),
		"Title":   g.Title,
		"Time":    g.Time,
	})
}

func nonEmpty(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (h *Handler) handleGroupButton(s *discordgo.Session, i *discordgo.InteractionCreate, kind entities.PingKind) {
	timeInput := pkgdiscord.TextInput{
		ID:          fieldGroupTime,
		Label:       h.tx.Get("group.modal.time"),
		Placeholder: h.tx.Get("group.modal.time_placeholder"),
		Required:    true,
		MinLength:   4,
		MaxLength:   5,
	}
	if kind == entities.PingCustom {
		respondModal(s, i.Interaction, pkgdiscord.GroupModalID(kind), h.tx.Get("group.modal.custom_title"), pkgdiscord.ModalRows(
			pkgdiscord.TextInput{
				ID:          fieldGroupName,
				Label:       h.tx.Get("group.modal.name"),
				Placeholder: h.tx.Get("group.modal.name_placeholder"),
				Required:    true,
				MinLength:   1,
				MaxLength:   100,
			},
			timeInput,
		))
		return
	}
	respondModal(s, i.Interaction, pkgdiscord.GroupModalID(kind), h.tx.Get("group.modal.title"), pkgdiscord.ModalRows(timeInput))
}

func (h *Handler) handleGroupModal(s *discordgo.Session, i *discordgo.InteractionCreate, kind entities.PingKind) {
	ctx := context.Background()
	values := pkgdiscord.ModalValues(i.ModalSubmitData())

	title := values[fieldGroupName]
	if kind != entities.PingCustom {
		title = h.tx.Get("group.title." + string(kind))
	}
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	g, err := h.pings.Schedule(ctx, input.SchedulePingInput{
		Kind:      kind,
		Title:     title,
		Time:      values[fieldGroupTime],
		Creator:   actorFrom(i),
		ChannelID: i.ChannelID,
	})
	if err != nil {
		h.editError(ctx, s, i, err)
		return
	}
	slog.InfoContext(ctx, "📣 Appel de groupe envoyé", "kind", g.Kind, "time", g.Time, "user_id", g.CreatorID)
	editResponse(s, i.Interaction, h.tx.Get("group.reply.done", map[string]any{"Title": g.Title, "Time": g.Time}))
}
