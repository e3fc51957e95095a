package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ModalValues lit les champs d'un formulaire soumis, indexés par CustomID.
// Les valeurs sont nettoyées des espaces de bord.
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string, len(data.Components))
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok {
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}
	return values
}

// TextInput est la description d'un champ de formulaire.
type TextInput struct {
	ID          string
	Label       string
	Placeholder string
	Paragraph   bool
	Required    bool
	MinLength   int
	MaxLength   int
}

// ModalRows place chaque champ sur sa propre ligne.
func ModalRows(inputs ...TextInput) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, in := range inputs {
		style := discordgo.TextInputShort
		if in.Paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    in.ID,
				Label:       in.Label,
				Placeholder: in.Placeholder,
				Style:       style,
				Required:    in.Required,
				MinLength:   in.MinLength,
				MaxLength:   in.MaxLength,
			},
		}})
	}
	return rows
}
