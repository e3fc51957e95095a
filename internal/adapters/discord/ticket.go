package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	pkgdiscord "musterbot/pkg/discord"
)

// Identifiants des champs de formulaire, repris comme clés des champs de la demande.
const (
	fieldTarget      = "target"
	fieldDescription = "description"
	fieldEvidence    = "evidence"
	fieldMissions    = "missions"
	fieldRollbacks   = "rollbacks"
	fieldRules       = "rules"
	fieldDays        = "days"
	fieldReason      = "reason"
)

// Ordre des champs par type de demande.
var ticketFormFields = map[entities.TicketKind][]string{
	entities.TicketReport:     {fieldTarget, fieldDescription, fieldEvidence},
	entities.TicketSuggestion: {fieldDescription},
	entities.TicketOrder:      {entities.FieldStatics, fieldEvidence},
	entities.TicketPromotion:  {fieldMissions, fieldRollbacks, fieldRules, fieldDays, fieldEvidence},
}

func (h *Handler) evidenceInput() pkgdiscord.TextInput {
	return pkgdiscord.TextInput{
		ID:          fieldEvidence,
		Label:       h.tx.Get("ticket.modal.evidence"),
		Placeholder: h.tx.Get("ticket.modal.evidence_placeholder"),
		Required:    true,
		MaxLength:   200,
	}
}

func (h *Handler) handleReportButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondModal(s, i.Interaction, pkgdiscord.ReportModalID, h.tx.Get("ticket.modal.report.title"), pkgdiscord.ModalRows(
		pkgdiscord.TextInput{
			ID:          fieldTarget,
			Label:       h.tx.Get("ticket.modal.report.target"),
			Placeholder: h.tx.Get("ticket.modal.report.target_placeholder"),
			Required:    true,
			MaxLength:   100,
		},
		pkgdiscord.TextInput{
			ID:          fieldDescription,
			Label:       h.tx.Get("ticket.modal.report.description"),
			Placeholder: h.tx.Get("ticket.modal.report.description_placeholder"),
			Paragraph:   true,
			Required:    true,
			MinLength:   100,
			MaxLength:   1000,
		},
		h.evidenceInput(),
	))
}

func (h *Handler) handleSuggestionButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondModal(s, i.Interaction, pkgdiscord.SuggestionModalID, h.tx.Get("ticket.modal.suggestion.title"), pkgdiscord.ModalRows(
		pkgdiscord.TextInput{
			ID:          fieldDescription,
			Label:       h.tx.Get("ticket.modal.suggestion.description"),
			Placeholder: h.tx.Get("ticket.modal.suggestion.description_placeholder"),
			Paragraph:   true,
			Required:    true,
			MinLength:   100,
			MaxLength:   1500,
		},
	))
}

// handlePromotionButton vérifie le rang avant d'ouvrir le formulaire.
func (h *Handler) handlePromotionButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	current, next, err := h.tickets.CanRequestPromotion(actorFrom(i))
	if err != nil {
		h.respondError(context.Background(), s, i, err)
		return
	}
	title := h.tx.Get("ticket.title.promotion", map[string]any{"Current": current, "Next": next})
	respondModal(s, i.Interaction, pkgdiscord.PromotionModalID, title, pkgdiscord.ModalRows(
		pkgdiscord.TextInput{ID: fieldMissions, Label: h.tx.Get("ticket.modal.promotion.missions"), Placeholder: h.tx.Get("ticket.modal.promotion.missions_placeholder"), Paragraph: true, Required: true, MaxLength: 1000},
		pkgdiscord.TextInput{ID: fieldRollbacks, Label: h.tx.Get("ticket.modal.promotion.rollbacks"), Placeholder: h.tx.Get("ticket.modal.promotion.rollbacks_placeholder"), Paragraph: true, Required: true, MaxLength: 1000},
		pkgdiscord.TextInput{ID: fieldRules, Label: h.tx.Get("ticket.modal.promotion.rules"), Placeholder: h.tx.Get("ticket.modal.promotion.rules_placeholder"), Required: true, MaxLength: 10},
		pkgdiscord.TextInput{ID: fieldDays, Label: h.tx.Get("ticket.modal.promotion.days"), Placeholder: h.tx.Get("ticket.modal.promotion.days_placeholder"), Required: true, MaxLength: 10},
		h.evidenceInput(),
	))
}

func (h *Handler) handleOrderSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	order, err := domain.LookupOrder(values[0])
	if err != nil {
		h.respondError(context.Background(), s, i, err)
		return
	}
	title := truncate(h.tx.Get("ticket.modal.order.title", map[string]any{"Label": order.Label}), 45)
	respondModal(s, i.Interaction, pkgdiscord.OrderModalID(order.Value), title, pkgdiscord.ModalRows(
		pkgdiscord.TextInput{
			ID:          entities.FieldStatics,
			Label:       h.tx.Get("ticket.modal.order.statics"),
			Placeholder: h.tx.Get("ticket.modal.order.statics_placeholder"),
			Required:    true,
			MaxLength:   200,
		},
		h.evidenceInput(),
	))
}

// submitTicket ouvre la demande à partir des valeurs du formulaire.
func (h *Handler) submitTicket(s *discordgo.Session, i *discordgo.InteractionCreate, kind entities.TicketKind, orderType string) {
	ctx := context.Background()
	values := pkgdiscord.ModalValues(i.ModalSubmitData())
	if !deferEphemeral(s, i.Interaction) {
		return
	}

	t, err := h.tickets.Open(ctx, input.OpenTicketInput{
		Kind:      kind,
		Author:    actorFrom(i),
		GuildID:   i.GuildID,
		Fields:    formFields(kind, values),
		OrderType: orderType,
	})
	if err != nil {
		h.editError(ctx, s, i, err)
		return
	}
	slog.InfoContext(ctx, "📨 Demande ouverte", "kind", kind, "user_id", t.AuthorID, "channel_id", t.ChannelID)
	editResponse(s, i.Interaction, h.tx.Get("ticket.reply.opened", map[string]any{"Channel": "<#" + t.ChannelID + ">"}))
}

func formFields(kind entities.TicketKind, values map[string]string) []entities.TicketField {
	keys := ticketFormFields[kind]
	fields := make([]entities.TicketField, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, entities.TicketField{Key: key, Value: values[key]})
	}
	return fields
}

// handleDecisionButton : l'approbation est immédiate, le refus demande un motif.
func (h *Handler) handleDecisionButton(s *discordgo.Session, i *discordgo.InteractionCreate, buttonID string) {
	ctx := context.Background()
	moderator := actorFrom(i)

	_, action, err := h.tickets.Lookup(ctx, buttonID, moderator)
	if err != nil {
		h.respondError(ctx, s, i, err)
		return
	}
	if action == entities.DecisionReject {
		respondModal(s, i.Interaction, pkgdiscord.RejectModalID(buttonID), h.tx.Get("ticket.modal.reject.title"), pkgdiscord.ModalRows(
			pkgdiscord.TextInput{
				ID:        fieldReason,
				Label:     h.tx.Get("ticket.modal.reject.reason"),
				Paragraph: true,
				Required:  true,
				MaxLength: 1000,
			},
		))
		return
	}
	h.decide(ctx, s, i, input.DecideInput{ButtonID: buttonID, Moderator: moderator})
}

func (h *Handler) handleRejectModal(s *discordgo.Session, i *discordgo.InteractionCreate, buttonID string) {
	values := pkgdiscord.ModalValues(i.ModalSubmitData())
	h.decide(context.Background(), s, i, input.DecideInput{
		ButtonID:  buttonID,
		Moderator: actorFrom(i),
		Reason:    values[fieldReason],
	})
}

func (h *Handler) decide(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, in input.DecideInput) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	d, err := h.tickets.Decide(ctx, in)
	if err != nil {
		h.editError(ctx, s, i, err)
		return
	}
	slog.InfoContext(ctx, "✅ Décision enregistrée", "kind", d.Kind, "action", d.Action, "moderator_id", d.ModeratorID)
	// Le salon vient d'être supprimé : la réponse différée peut ne plus exister.
	editResponse(s, i.Interaction, h.tx.Get("ticket.reply.decided"))
}
