package discord

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
)

// keyTranslator rend "key{A=1 B=2}" pour vérifier clés et données.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	parts := make([]string, 0, len(data))
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return key + "{" + strings.Join(parts, " ") + "}"
}

var tx = NewTexts(keyTranslator{}, "ru")

func TestMusterEmbed(t *testing.T) {
	m := &entities.Muster{
		Name:        "Капт",
		CreatorID:   "42",
		ScheduledAt: time.Unix(1767225600, 0),
		Slots:       2,
		Primary:     []roster.Entry{{UserID: "1"}, {UserID: "2"}},
		CreatedAt:   time.Unix(1767200000, 0),
	}
	e := MusterEmbed(tx, m)
	assert.Equal(t, "⚔️ Капт", e.Title)
	assert.Contains(t, e.Description, "Creator=<@42>")
	assert.Contains(t, e.Description, "Time=<t:1767225600:F>")
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "muster.embed.primary{Count=2 Slots=2}", e.Fields[0].Name)
	assert.Equal(t, "1. <@1>\n2. <@2>", e.Fields[0].Value)
	assert.Equal(t, "—", e.Fields[1].Value)

	closed := ClosedMusterEmbed(tx, m, true)
	assert.Equal(t, "muster.embed.expired", closed.Footer.Text)
	assert.NotEqual(t, e.Color, closed.Color)
}

func TestTicketEmbedOrder(t *testing.T) {
	tk := &entities.Ticket{
		Kind:     entities.TicketOrder,
		AuthorID: "7",
		Fields: []entities.TicketField{
			{Key: entities.FieldOrderType, Value: "Ценная партия"},
			{Key: entities.FieldStatics, Value: "11111"},
			{Key: "evidence", Value: ""},
			{Key: entities.FieldOrderPrice, Value: "178.000"},
		},
	}
	e := TicketEmbed(tx, tk)
	assert.Equal(t, "ticket.title.order{Current= Label=Ценная партия Next=}", e.Title)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "<@7>", e.Fields[0].Value)
	assert.Equal(t, "ticket.field.order_info_value{Price=178.000 Type=Ценная партия}", e.Fields[1].Value)
	assert.Equal(t, "ticket.field.statics", e.Fields[2].Name)
	assert.Equal(t, "—", e.Fields[3].Value)
}

func TestDecisionEmbed(t *testing.T) {
	tk := &entities.Ticket{Kind: entities.TicketReport, AuthorID: "7"}
	d := &entities.Decision{Action: entities.DecisionReject, ModeratorID: "9", Reason: "нет доказательств"}
	e := DecisionEmbed(tx, tk, d)
	assert.True(t, strings.HasPrefix(e.Title, "ticket.decision.report.reject"))
	assert.Equal(t, rejectedColor, e.Color)
	last := e.Fields[len(e.Fields)-1]
	assert.Equal(t, "ticket.field.reject_reason", last.Name)
	assert.Equal(t, "нет доказательств", last.Value)
}

func TestClip(t *testing.T) {
	long := strings.Repeat("я", 2000)
	out := clip(long)
	assert.Equal(t, maxFieldValue, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "…"))
}
