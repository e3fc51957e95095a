package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
	pkgdiscord "musterbot/pkg/discord"
)

const ticketAccess = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionReadMessageHistory

var _ output.TicketDesk = (*TicketDesk)(nil)

// TicketDesk ouvre un salon privé par demande et publie les décisions.
type TicketDesk struct {
	session    *discordgo.Session
	tx         pkgdiscord.Texts
	categories map[entities.TicketKind]string
	pingRoles  map[entities.TicketKind][]string
	logChannel string
}

func (d *TicketDesk) Open(ctx context.Context, t *entities.Ticket, guildID string) (string, string, error) {
	roles := d.pingRoles[t.Kind]
	ch, err := d.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 ticketChannelName(t),
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             d.categories[t.Kind],
		PermissionOverwrites: ticketOverwrites(guildID, d.session.State.User.ID, t.AuthorID, roles),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("create ticket channel: %w", err)
	}

	msg, err := d.session.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content:         roleMentions(roles),
		Embeds:          []*discordgo.MessageEmbed{pkgdiscord.TicketEmbed(d.tx, t)},
		Components:      decisionComponents(d.tx, t),
		AllowedMentions: &discordgo.MessageAllowedMentions{Roles: roles},
	}, discordgo.WithContext(ctx))
	if err != nil {
		if _, delErr := d.session.ChannelDelete(ch.ID); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return "", "", fmt.Errorf("send ticket message: %w", err)
	}
	return ch.ID, msg.ID, nil
}

// NotifyAuthor envoie à l'auteur une copie de sa demande.
func (d *TicketDesk) NotifyAuthor(ctx context.Context, t *entities.Ticket) error {
	return sendDM(ctx, d.session, t.AuthorID, &discordgo.MessageSend{
		Content: d.tx.Get("ticket.dm.copy"),
		Embeds:  []*discordgo.MessageEmbed{pkgdiscord.TicketEmbed(d.tx, t)},
	})
}

// Announce prévient l'auteur et copie la décision dans le journal.
func (d *TicketDesk) Announce(ctx context.Context, t *entities.Ticket, dec *entities.Decision) error {
	embed := pkgdiscord.DecisionEmbed(d.tx, t, dec)
	var errs []error
	if err := sendDM(ctx, d.session, t.AuthorID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}); err != nil {
		errs = append(errs, err)
	}
	if d.logChannel != "" {
		if _, err := d.session.ChannelMessageSendEmbed(d.logChannel, embed, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("post decision log: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (d *TicketDesk) CloseChannel(ctx context.Context, t *entities.Ticket, _ *entities.Decision) error {
	if _, err := d.session.ChannelDelete(t.ChannelID, discordgo.WithContext(ctx)); err != nil {
		if pkgdiscord.IsGone(err) {
			slog.WarnContext(ctx, "⚠️ Salon de la demande déjà supprimé", "channel_id", t.ChannelID, tint.Err(err))
			return nil
		}
		return err
	}
	return nil
}

func ticketChannelName(t *entities.Ticket) string {
	return sanitizeChannelName(string(t.Kind) + "-" + t.AuthorName)
}

// ticketOverwrites : @everyone (id du serveur) ne voit rien ; le bot, les
// rôles notifiés et l'auteur lisent et écrivent.
func ticketOverwrites(guildID, botID, authorID string, roles []string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: botID, Type: discordgo.PermissionOverwriteTypeMember, Allow: ticketAccess},
		{ID: authorID, Type: discordgo.PermissionOverwriteTypeMember, Allow: ticketAccess},
	}
	for _, role := range roles {
		if role == "" {
			continue
		}
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: role, Type: discordgo.PermissionOverwriteTypeRole, Allow: ticketAccess,
		})
	}
	return overwrites
}

func decisionComponents(tx pkgdiscord.Texts, t *entities.Ticket) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tx.Get("ticket.button.approve"), Style: discordgo.SuccessButton, CustomID: t.ApproveButtonID},
			discordgo.Button{Label: tx.Get("ticket.button.reject"), Style: discordgo.DangerButton, CustomID: t.RejectButtonID},
		}},
	}
}
