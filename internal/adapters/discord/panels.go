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

const panelHistoryLimit = 100

// panel est un message fixe (embed + composants) republié au démarrage.
type panel struct {
	name       string
	channelID  string
	components []discordgo.MessageComponent
}

func (h *Handler) panels() []panel {
	return []panel{
		{name: "feedback", channelID: h.channels.Main, components: feedbackComponents(h.tx)},
		{name: "orders", channelID: h.channels.Order, components: orderComponents(h.tx)},
		{name: "afk", channelID: h.channels.Afk, components: afkComponents(h.tx)},
		{name: "group", channelID: h.channels.Group, components: groupComponents(h.tx)},
	}
}

// postPanels remplace les anciens messages du bot par un panneau neuf dans
// chaque salon configuré.
func (h *Handler) postPanels(ctx context.Context, s *discordgo.Session) {
	for _, p := range h.panels() {
		if p.channelID == "" {
			continue
		}
		clearBotMessages(ctx, s, p.channelID)
		_, err := s.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{pkgdiscord.PanelEmbed(h.tx, p.name)},
			Components: p.components,
		}, discordgo.WithContext(ctx))
		if err != nil {
			slog.ErrorContext(ctx, "❌ Publication du panneau impossible", "panel", p.name, "channel_id", p.channelID, tint.Err(err))
			continue
		}
		slog.InfoContext(ctx, "✅ Panneau publié", "panel", p.name, "channel_id", p.channelID)
	}
}

func clearBotMessages(ctx context.Context, s *discordgo.Session, channelID string) {
	msgs, err := s.ChannelMessages(channelID, panelHistoryLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		slog.WarnContext(ctx, "⚠️ Historique du salon indisponible", "channel_id", channelID, tint.Err(err))
		return
	}
	for _, m := range msgs {
		if m.Author == nil || m.Author.ID != s.State.User.ID {
			continue
		}
		if err := s.ChannelMessageDelete(channelID, m.ID, discordgo.WithContext(ctx)); err != nil && !pkgdiscord.IsGone(err) {
			slog.WarnContext(ctx, "⚠️ Ancien panneau non supprimé", "message_id", m.ID, tint.Err(err))
		}
	}
}

func feedbackComponents(tx pkgdiscord.Texts) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tx.Get("ticket.button.report"), Style: discordgo.DangerButton, CustomID: pkgdiscord.ReportButtonID},
			discordgo.Button{Label: tx.Get("ticket.button.suggestion"), Style: discordgo.PrimaryButton, CustomID: pkgdiscord.SuggestionButtonID},
			discordgo.Button{Label: tx.Get("ticket.button.promotion"), Style: discordgo.SuccessButton, CustomID: pkgdiscord.PromotionButtonID},
		}},
	}
}

func orderComponents(tx pkgdiscord.Texts) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(domain.OrderCatalog))
	for _, o := range domain.OrderCatalog {
		options = append(options, discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Price,
			Emoji:       &discordgo.ComponentEmoji{Name: o.Emoji},
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    pkgdiscord.OrderSelectID,
				Placeholder: tx.Get("ticket.order.select_placeholder"),
				Options:     options,
			},
		}},
	}
}

func afkComponents(tx pkgdiscord.Texts) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tx.Get("afk.button"), Style: discordgo.DangerButton, CustomID: pkgdiscord.AfkButtonID},
		}},
	}
}

// groupComponents : une ligne de boutons, le MP libre en gris.
func groupComponents(tx pkgdiscord.Texts) []discordgo.MessageComponent {
	row := make([]discordgo.MessageComponent, 0, len(entities.PingKinds))
	for _, kind := range entities.PingKinds {
		style := discordgo.PrimaryButton
		if kind == entities.PingCustom {
			style = discordgo.SecondaryButton
		}
		row = append(row, discordgo.Button{
			Label:    tx.Get("group.button", map[string]any{"Title": tx.Get("group.title." + string(kind))}),
			Style:    style,
			CustomID: pkgdiscord.GroupButtonID(kind),
			Emoji:    &discordgo.ComponentEmoji{Name: groupEmoji[kind]},
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: row}}
}
