package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
)

const (
	embedColor    = 0x5865F2
	closedColor   = 0x99AAB5
	approvedColor = 0x57F287
	rejectedColor = 0xED4245
	afkColor      = 0xFEE75C

	// Limite Discord de la valeur d'un champ.
	maxFieldValue = 1024
)

// MusterEmbed décrit un rassemblement ouvert : heure, créateur et les deux listes.
func MusterEmbed(tx Texts, m *entities.Muster) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚔️ " + m.Name,
		Description: tx.Get("muster.embed.description", map[string]any{
			"Time":    Timestamp(m.ScheduledAt, "F"),
			"Until":   Timestamp(m.ScheduledAt, "R"),
			"Creator": mention(m.CreatorID),
		}),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  tx.Get("muster.embed.primary", map[string]any{"Count": len(m.Primary), "Slots": m.Slots}),
				Value: entryList(m.Primary),
			},
			{
				Name:  tx.Get("muster.embed.overflow", map[string]any{"Count": len(m.Overflow)}),
				Value: entryList(m.Overflow),
			},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: tx.Get("muster.embed.footer", map[string]any{"Slots": m.Slots})},
		Timestamp: m.CreatedAt.Format(time.RFC3339),
	}
}

// ClosedMusterEmbed est l'embed figé d'un rassemblement fermé ou expiré.
func ClosedMusterEmbed(tx Texts, m *entities.Muster, expired bool) *discordgo.MessageEmbed {
	e := MusterEmbed(tx, m)
	e.Color = closedColor
	key := "muster.embed.closed"
	if expired {
		key = "muster.embed.expired"
	}
	e.Footer = &discordgo.MessageEmbedFooter{Text: tx.Get(key)}
	return e
}

func entryList(entries []roster.Entry) string {
	if len(entries) == 0 {
		return "—"
	}
	var b strings.Builder
	for i, e := range entries {
		line := fmt.Sprintf("%d. %s\n", i+1, mention(e.UserID))
		if b.Len()+len(line) > maxFieldValue-4 {
			b.WriteString("…")
			break
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}

// TicketEmbed présente une demande aux modérateurs.
func TicketEmbed(tx Texts, t *entities.Ticket) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     TicketTitle(tx, t),
		Color:     embedColor,
		Fields:    ticketFields(tx, t),
		Footer:    &discordgo.MessageEmbedFooter{Text: tx.Get("ticket.embed.footer", map[string]any{"Author": t.AuthorName})},
		Timestamp: t.CreatedAt.Format(time.RFC3339),
	}
	return e
}

// TicketTitle rend le titre propre au type de demande.
func TicketTitle(tx Texts, t *entities.Ticket) string {
	return tx.Get("ticket.title."+string(t.Kind), titleData(t))
}

func titleData(t *entities.Ticket) map[string]any {
	return map[string]any{
		"Label":   t.Field(entities.FieldOrderType),
		"Current": t.Field(entities.FieldRankCurrent),
		"Next":    t.Field(entities.FieldRankNext),
	}
}

// ticketFields : l'auteur d'abord ; pour une commande, le type et le prix
// sont regroupés dans un champ d'information.
func ticketFields(tx Texts, t *entities.Ticket) []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{{
		Name:   tx.Get("ticket.field.author." + string(t.Kind)),
		Value:  mention(t.AuthorID),
		Inline: true,
	}}
	if t.Kind == entities.TicketOrder {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: tx.Get("ticket.field.order_info"),
			Value: tx.Get("ticket.field.order_info_value", map[string]any{
				"Type":  t.Field(entities.FieldOrderType),
				"Price": t.Field(entities.FieldOrderPrice),
			}),
			Inline: true,
		})
	}
	for _, f := range t.Fields {
		switch f.Key {
		case entities.FieldOrderType, entities.FieldOrderPrice, entities.FieldRankCurrent, entities.FieldRankNext:
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  tx.Get("ticket.field." + f.Key),
			Value: clip(f.Value),
		})
	}
	return fields
}

// DecisionEmbed reprend la demande avec son issue, pour l'auteur et le journal.
func DecisionEmbed(tx Texts, t *entities.Ticket, d *entities.Decision) *discordgo.MessageEmbed {
	color := approvedColor
	if d.Action == entities.DecisionReject {
		color = rejectedColor
	}
	data := titleData(t)
	data["Title"] = TicketTitle(tx, t)
	fields := ticketFields(tx, t)
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   tx.Get("ticket.field.moderator"),
		Value:  mention(d.ModeratorID),
		Inline: true,
	})
	if d.Reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  tx.Get("ticket.field.reject_reason"),
			Value: clip(d.Reason),
		})
	}
	return &discordgo.MessageEmbed{
		Title:     tx.Get("ticket.decision."+string(t.Kind)+"."+string(d.Action), data),
		Color:     color,
		Fields:    fields,
		Timestamp: d.DecidedAt.Format(time.RFC3339),
	}
}

// AfkEmbed annonce une absence avec son début et sa fin.
func AfkEmbed(tx Texts, n *entities.AfkNotice) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: tx.Get("afk.embed.title"),
		Color: afkColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: tx.Get("afk.embed.user"), Value: mention(n.UserID), Inline: true},
			{Name: tx.Get("afk.embed.hours"), Value: strconv.FormatFloat(n.Hours, 'f', -1, 64), Inline: true},
			{Name: tx.Get("afk.embed.start"), Value: Timestamp(n.Start, "F")},
			{Name: tx.Get("afk.embed.end"), Value: Timestamp(n.End, "F") + " (" + Timestamp(n.End, "R") + ")"},
			{Name: tx.Get("afk.embed.reason"), Value: clip(n.Reason)},
		},
		Timestamp: n.Start.Format(time.RFC3339),
	}
}

// PanelEmbed est l'en-tête d'un panneau de boutons (feedback, orders, afk, group).
func PanelEmbed(tx Texts, panel string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       tx.Get("panel." + panel + ".title"),
		Description: tx.Get("panel." + panel + ".description"),
		Color:       embedColor,
	}
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func clip(s string) string {
	if s == "" {
		return "—"
	}
	r := []rune(s)
	if len(r) > maxFieldValue {
		return string(r[:maxFieldValue-1]) + "…"
	}
	return s
}
