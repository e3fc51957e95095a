package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
	pkgdiscord "musterbot/pkg/discord"
)

const (
	buttonsPerRow       = 2
	threadArchiveMinute = 1440
)

var _ output.MusterBoard = (*MusterBoard)(nil)

// MusterBoard affiche les rassemblements dans leur salon.
type MusterBoard struct {
	session  *discordgo.Session
	tx       pkgdiscord.Texts
	loc      *time.Location
	raveRole string
}

// Publish envoie le message, y ajoute les boutons (leur id porte celui du
// message) puis ouvre un fil de discussion.
func (b *MusterBoard) Publish(ctx context.Context, m *entities.Muster) (string, string, error) {
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{pkgdiscord.MusterEmbed(b.tx, m)},
	}
	if b.raveRole != "" {
		send.Content = roleMentions([]string{b.raveRole})
		send.AllowedMentions = &discordgo.MessageAllowedMentions{Roles: []string{b.raveRole}}
	}
	msg, err := b.session.ChannelMessageSendComplex(m.ChannelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("send muster message: %w", err)
	}

	components := musterComponents(b.tx, msg.ID, false)
	if _, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         msg.ID,
		Channel:    m.ChannelID,
		Components: &components,
	}, discordgo.WithContext(ctx)); err != nil {
		_ = b.session.ChannelMessageDelete(m.ChannelID, msg.ID)
		return "", "", fmt.Errorf("attach muster buttons: %w", err)
	}

	thread, err := b.session.MessageThreadStartComplex(m.ChannelID, msg.ID, &discordgo.ThreadStart{
		Name:                truncate(b.tx.Get("muster.thread_name", map[string]any{"Name": m.Name}), 100),
		AutoArchiveDuration: threadArchiveMinute,
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.WarnContext(ctx, "⚠️ Création du fil de discussion impossible", "message_id", msg.ID, tint.Err(err))
		return msg.ID, "", nil
	}
	return msg.ID, thread.ID, nil
}

// Refresh réécrit l'embed après un changement des listes.
func (b *MusterBoard) Refresh(ctx context.Context, m *entities.Muster) error {
	embeds := []*discordgo.MessageEmbed{pkgdiscord.MusterEmbed(b.tx, m)}
	components := musterComponents(b.tx, m.ID, false)
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         m.ID,
		Channel:    m.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if pkgdiscord.IsGone(err) {
		return domain.ErrMessageGone
	}
	return err
}

func (b *MusterBoard) Check(ctx context.Context, m *entities.Muster) error {
	_, err := b.session.ChannelMessage(m.ChannelID, m.ID, discordgo.WithContext(ctx))
	if pkgdiscord.IsGone(err) {
		return domain.ErrMessageGone
	}
	return err
}

// Archive fige l'embed et désactive les boutons. Pour une expiration, une
// note est laissée dans le fil (ou le salon à défaut).
func (b *MusterBoard) Archive(ctx context.Context, m *entities.Muster, reason output.ArchiveReason) error {
	expired := reason == output.ArchiveExpired
	embeds := []*discordgo.MessageEmbed{pkgdiscord.ClosedMusterEmbed(b.tx, m, expired)}
	components := musterComponents(b.tx, m.ID, true)
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         m.ID,
		Channel:    m.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		if pkgdiscord.IsGone(err) {
			return domain.ErrMessageGone
		}
		return fmt.Errorf("archive muster message: %w", err)
	}

	if expired {
		target := m.ThreadID
		if target == "" {
			target = m.ChannelID
		}
		note := b.tx.Get("muster.expired_note", map[string]any{
			"Time": pkgdiscord.FormatMusterTime(m.ScheduledAt, b.loc),
		})
		if _, err := b.session.ChannelMessageSend(target, note, discordgo.WithContext(ctx)); err != nil {
			slog.WarnContext(ctx, "⚠️ Note d'expiration non envoyée", "muster_id", m.ID, tint.Err(err))
		}
	}
	return nil
}

// Notify écrit en message privé à userID, sans bloquer l'appelant en cas d'échec.
func (b *MusterBoard) Notify(ctx context.Context, userID, content string) {
	if err := sendDM(ctx, b.session, userID, &discordgo.MessageSend{Content: content}); err != nil {
		slog.WarnContext(ctx, "⚠️ Message privé non envoyé", "user_id", userID, tint.Err(err))
	}
}

func musterComponents(tx pkgdiscord.Texts, musterID string, disabled bool) []discordgo.MessageComponent {
	buttons := []discordgo.Button{
		{Label: tx.Get("muster.button.join"), Style: discordgo.PrimaryButton, CustomID: pkgdiscord.MusterButtonID(pkgdiscord.MusterJoin, musterID)},
		{Label: tx.Get("muster.button.extra"), Style: discordgo.SecondaryButton, CustomID: pkgdiscord.MusterButtonID(pkgdiscord.MusterExtra, musterID)},
		{Label: tx.Get("muster.button.leave"), Style: discordgo.DangerButton, CustomID: pkgdiscord.MusterButtonID(pkgdiscord.MusterLeave, musterID)},
		{Label: tx.Get("muster.button.close"), Style: discordgo.SecondaryButton, CustomID: pkgdiscord.MusterButtonID(pkgdiscord.MusterClose, musterID)},
	}
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(buttons))
		row := make([]discordgo.MessageComponent, 0, end-start)
		for _, btn := range buttons[start:end] {
			btn.Disabled = disabled
			row = append(row, btn)
		}
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

func sendDM(ctx context.Context, s *discordgo.Session, userID string, msg *discordgo.MessageSend) error {
	ch, err := s.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := s.ChannelMessageSendComplex(ch.ID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
