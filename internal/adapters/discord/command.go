package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"musterbot/internal/ports/input"
	pkgdiscord "musterbot/pkg/discord"
)

const musterCommandName = "capt"

func musterCommand(tx pkgdiscord.Texts) *discordgo.ApplicationCommand {
	minSlots := 1.0
	return &discordgo.ApplicationCommand{
		Name:        musterCommandName,
		Description: tx.Get("muster.command.description"),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: tx.Get("muster.command.name"),
				Required:    true,
				MaxLength:   100,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date_time",
				Description: tx.Get("muster.command.date_time"),
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "slots",
				Description: tx.Get("muster.command.slots"),
				Required:    true,
				MinValue:    &minSlots,
			},
		},
	}
}

// HandleCommand crée un rassemblement dans le salon de la commande.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	in := input.CreateMusterInput{
		Creator:   actorFrom(i),
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "name":
			in.Name = opt.StringValue()
		case "date_time":
			in.DateTime = opt.StringValue()
		case "slots":
			in.Slots = int(opt.IntValue())
		}
	}

	if !deferEphemeral(s, i.Interaction) {
		return
	}
	m, err := h.musters.Create(ctx, in)
	if err != nil {
		h.editError(ctx, s, i, err)
		return
	}
	editResponse(s, i.Interaction, h.tx.Get("muster.reply.created", map[string]any{"Name": m.Name}))
}
