package discord

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	pkgdiscord "musterbot/pkg/discord"
)

// HandleComponent route les boutons et menus selon leur CustomID.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	if action, musterID, ok := pkgdiscord.ParseMusterButton(customID); ok {
		h.handleMusterButton(s, i, action, musterID)
		return
	}
	if kind, ok := pkgdiscord.ParseGroupButton(customID); ok {
		h.handleGroupButton(s, i, kind)
		return
	}
	if pkgdiscord.IsDecisionButton(customID) {
		h.handleDecisionButton(s, i, customID)
		return
	}
	switch customID {
	case pkgdiscord.ReportButtonID:
		h.handleReportButton(s, i)
	case pkgdiscord.SuggestionButtonID:
		h.handleSuggestionButton(s, i)
	case pkgdiscord.PromotionButtonID:
		h.handlePromotionButton(s, i)
	case pkgdiscord.OrderSelectID:
		h.handleOrderSelect(s, i)
	case pkgdiscord.AfkButtonID:
		h.handleAfkButton(s, i)
	}
}

func (h *Handler) handleMusterButton(s *discordgo.Session, i *discordgo.InteractionCreate, action pkgdiscord.MusterAction, musterID string) {
	ctx := context.Background()
	actor := actorFrom(i)

	if action == pkgdiscord.MusterClose {
		if err := h.musters.Close(ctx, musterID, actor); err != nil {
			h.respondError(ctx, s, i, err)
			return
		}
		slog.InfoContext(ctx, "🔒 Rassemblement fermé", "muster_id", musterID, "user_id", actor.UserID)
		respondEphemeral(s, i.Interaction, h.tx.Get("muster.reply.closed"))
		return
	}

	var (
		res roster.Result
		m   *entities.Muster
		err error
	)
	switch action {
	case pkgdiscord.MusterJoin:
		res, m, err = h.musters.Join(ctx, musterID, actor)
	case pkgdiscord.MusterExtra:
		res, m, err = h.musters.JoinOverflow(ctx, musterID, actor)
	case pkgdiscord.MusterLeave:
		res, m, err = h.musters.Leave(ctx, musterID, actor)
	}
	if err != nil {
		h.respondError(ctx, s, i, err)
		return
	}

	if res.Outcome != roster.AlreadyPresent && res.Outcome != roster.NotFound {
		if err := h.board.Refresh(ctx, m); err != nil && !errors.Is(err, domain.ErrMessageGone) {
			slog.ErrorContext(ctx, "❌ Erreur lors de la mise à jour de l'embed", "muster_id", m.ID, tint.Err(err))
		}
		h.notifyMoves(ctx, m, res)
	}
	respondEphemeral(s, i.Interaction, h.tx.Get(musterReplyKey(action, res), map[string]any{"Name": m.Name}))
}

// notifyMoves prévient les membres déplacés par l'opération d'un autre.
func (h *Handler) notifyMoves(ctx context.Context, m *entities.Muster, res roster.Result) {
	data := map[string]any{"Name": m.Name}
	if res.Evicted != nil {
		h.board.Notify(ctx, res.Evicted.UserID, h.tx.Get("muster.dm.evicted", data))
	}
	if res.Promoted != nil {
		h.board.Notify(ctx, res.Promoted.UserID, h.tx.Get("muster.dm.promoted", data))
	}
}

// musterReplyKey choisit la réponse affichée à l'auteur du clic.
func musterReplyKey(action pkgdiscord.MusterAction, res roster.Result) string {
	switch res.Outcome {
	case roster.AlreadyPresent:
		if res.List == roster.Overflow {
			return "muster.reply.already_overflow"
		}
		return "muster.reply.already_primary"
	case roster.NotFound:
		return "muster.reply.not_found"
	case roster.Swapped:
		return "muster.reply.swapped"
	}

	if action == pkgdiscord.MusterLeave {
		switch {
		case res.From == roster.Overflow:
			return "muster.reply.left_overflow"
		case res.Outcome == roster.Promoted:
			return "muster.reply.left_primary_promoted"
		default:
			return "muster.reply.left_primary"
		}
	}

	switch {
	case res.List == roster.Primary && res.Moved:
		return "muster.reply.moved_primary"
	case res.List == roster.Primary:
		return "muster.reply.added"
	case res.Moved:
		return "muster.reply.moved_overflow"
	default:
		return "muster.reply.added_overflow"
	}
}

// Garde lettres (y compris cyrilliques), chiffres, tiret. Le reste → tiret.
var channelNameSanitize = regexp.MustCompile(`[^\p{L}\p{N}-]+`)

func sanitizeChannelName(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = channelNameSanitize.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.TrimRight(truncate(s, 100), "-")
}
