package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

const membersPageSize = 1000

var _ output.MemberDirectory = (*MemberDirectory)(nil)

// MemberDirectory lit les rôles depuis le cache de la session, puis l'API.
type MemberDirectory struct {
	session *discordgo.Session
}

func (d *MemberDirectory) Roles(ctx context.Context, guildID, userID string) ([]string, error) {
	if m, err := d.session.State.Member(guildID, userID); err == nil {
		return m.Roles, nil
	}
	m, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("guild member %s: %w", userID, err)
	}
	return m.Roles, nil
}

// HandleReady publie les panneaux et synchronise le registre des membres.
func (h *Handler) HandleReady(s *discordgo.Session, r *discordgo.Ready) {
	ctx := context.Background()
	h.postPanels(ctx, s)

	for _, g := range r.Guilds {
		members, err := fetchMembers(ctx, s, g.ID)
		if err != nil {
			slog.ErrorContext(ctx, "❌ Liste des membres indisponible", "guild_id", g.ID, tint.Err(err))
			continue
		}
		added, updated, err := h.members.Sync(ctx, members)
		if err != nil {
			slog.ErrorContext(ctx, "❌ Synchronisation des membres impossible", "guild_id", g.ID, tint.Err(err))
			continue
		}
		slog.InfoContext(ctx, "👥 Membres synchronisés", "guild_id", g.ID, "total", len(members), "added", added, "updated", updated)
	}
}

// fetchMembers parcourt la liste paginée des membres, bots exclus.
func fetchMembers(ctx context.Context, s *discordgo.Session, guildID string) ([]entities.Member, error) {
	var out []entities.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			if m.User == nil || m.User.Bot {
				continue
			}
			out = append(out, entities.Member{ID: m.User.ID, DisplayName: resolveDisplayName(m)})
		}
		if len(page) < membersPageSize {
			return out, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func (h *Handler) HandleMemberAdd(_ *discordgo.Session, e *discordgo.GuildMemberAdd) {
	h.upsertMember(e.Member)
}

func (h *Handler) HandleMemberUpdate(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	if e.BeforeUpdate != nil && resolveDisplayName(e.BeforeUpdate) == resolveDisplayName(e.Member) {
		return
	}
	h.upsertMember(e.Member)
}

func (h *Handler) HandleMemberRemove(_ *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if e.Member == nil || e.User == nil {
		return
	}
	ctx := context.Background()
	if _, err := h.members.Remove(ctx, e.User.ID); err != nil {
		slog.ErrorContext(ctx, "❌ Suppression du membre impossible", "user_id", e.User.ID, tint.Err(err))
	}
}

func (h *Handler) upsertMember(m *discordgo.Member) {
	if m == nil || m.User == nil || m.User.Bot {
		return
	}
	ctx := context.Background()
	if err := h.members.Upsert(ctx, m.User.ID, resolveDisplayName(m)); err != nil {
		slog.ErrorContext(ctx, "❌ Mise à jour du membre impossible", "user_id", m.User.ID, tint.Err(err))
	}
}
