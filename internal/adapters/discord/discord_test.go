package discord

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	pkgdiscord "musterbot/pkg/discord"
)

// echo rend la clé telle quelle.
type echo struct{}

func (echo) T(_, key string, _ map[string]any) string { return key }

var tx = pkgdiscord.NewTexts(echo{}, "ru")

func TestSanitizeChannelName(t *testing.T) {
	assert.Equal(t, "report-вася-пупкин", sanitizeChannelName("report-Вася Пупкин"))
	assert.Equal(t, "order-john-doe", sanitizeChannelName("  order-John_Doe!! "))
	assert.Equal(t, "promotion", sanitizeChannelName("promotion-???"))
	long := sanitizeChannelName("suggestion-" + strings.Repeat("я", 150))
	assert.Len(t, []rune(long), 100)
}

func TestMusterReplyKey(t *testing.T) {
	join, extra, leave := pkgdiscord.MusterJoin, pkgdiscord.MusterExtra, pkgdiscord.MusterLeave
	cases := []struct {
		name   string
		action pkgdiscord.MusterAction
		res    roster.Result
		want   string
	}{
		{"added", join, roster.Result{Outcome: roster.Added, List: roster.Primary}, "muster.reply.added"},
		{"full", join, roster.Result{Outcome: roster.Added, List: roster.Overflow}, "muster.reply.added_overflow"},
		{"from overflow", join, roster.Result{Outcome: roster.Added, List: roster.Primary, Moved: true}, "muster.reply.moved_primary"},
		{"swapped", join, roster.Result{Outcome: roster.Swapped, List: roster.Primary}, "muster.reply.swapped"},
		{"already primary", join, roster.Result{Outcome: roster.AlreadyPresent, List: roster.Primary}, "muster.reply.already_primary"},
		{"still full", join, roster.Result{Outcome: roster.AlreadyPresent, List: roster.Overflow}, "muster.reply.already_overflow"},
		{"extra", extra, roster.Result{Outcome: roster.Added, List: roster.Overflow}, "muster.reply.added_overflow"},
		{"extra from primary", extra, roster.Result{Outcome: roster.Promoted, List: roster.Overflow, Moved: true}, "muster.reply.moved_overflow"},
		{"leave primary", leave, roster.Result{Outcome: roster.Removed, From: roster.Primary}, "muster.reply.left_primary"},
		{"leave promotes", leave, roster.Result{Outcome: roster.Promoted, From: roster.Primary}, "muster.reply.left_primary_promoted"},
		{"leave overflow", leave, roster.Result{Outcome: roster.Removed, From: roster.Overflow}, "muster.reply.left_overflow"},
		{"leave unknown", leave, roster.Result{Outcome: roster.NotFound}, "muster.reply.not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, musterReplyKey(tc.action, tc.res))
		})
	}
}

func TestMusterComponents(t *testing.T) {
	rows := musterComponents(tx, "123", true)
	require.Len(t, rows, 2)

	var ids []string
	for _, r := range rows {
		row := r.(discordgo.ActionsRow)
		require.Len(t, row.Components, buttonsPerRow)
		for _, c := range row.Components {
			btn := c.(discordgo.Button)
			assert.True(t, btn.Disabled)
			ids = append(ids, btn.CustomID)
		}
	}
	assert.Equal(t, []string{"join_123", "extra_123", "leave_123", "close_123"}, ids)
}

func TestTicketOverwrites(t *testing.T) {
	ow := ticketOverwrites("guild", "bot", "author", []string{"mod", ""})
	require.Len(t, ow, 4)

	assert.Equal(t, "guild", ow[0].ID)
	assert.Equal(t, int64(discordgo.PermissionViewChannel), ow[0].Deny)
	assert.Zero(t, ow[0].Allow)

	for _, o := range ow[1:] {
		assert.Equal(t, int64(ticketAccess), o.Allow)
	}
	assert.Equal(t, discordgo.PermissionOverwriteTypeMember, ow[2].Type)
	assert.Equal(t, discordgo.PermissionOverwriteTypeRole, ow[3].Type)
}

func TestTicketChannelName(t *testing.T) {
	tk := &entities.Ticket{Kind: entities.TicketOrder, AuthorName: "Ivan Petrov | 12345"}
	assert.Equal(t, "order-ivan-petrov-12345", ticketChannelName(tk))
}

func TestFormFields(t *testing.T) {
	fields := formFields(entities.TicketReport, map[string]string{
		fieldDescription: "desc",
		fieldTarget:      "target",
		"ignored":        "x",
	})
	assert.Equal(t, []entities.TicketField{
		{Key: fieldTarget, Value: "target"},
		{Key: fieldDescription, Value: "desc"},
		{Key: fieldEvidence, Value: ""},
	}, fields)
}

func TestPingContent(t *testing.T) {
	g := &entities.PingGroup{Kind: entities.PingDrop, Title: "Дроп", Time: "18:30"}
	assert.Equal(t, "group.ping.preset", pingContent(tx, "rave", g))

	g.Kind = entities.PingCustom
	assert.Equal(t, "group.ping.custom", pingContent(tx, "", g))
	assert.Equal(t, "<@&rave>", roleMentions(nonEmpty("rave", "")))
}

func TestGroupComponents(t *testing.T) {
	row := groupComponents(tx)[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, len(entities.PingKinds))
	last := row.Components[len(row.Components)-1].(discordgo.Button)
	assert.Equal(t, "group_custom", last.CustomID)
	assert.Equal(t, discordgo.SecondaryButton, last.Style)
	assert.Equal(t, "✏️", last.Emoji.Name)
}

func TestActorFrom(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "1", Username: "ivan", GlobalName: "Ivan"},
			Nick:        "Ivan | 12345",
			Roles:       []string{"r1"},
			Permissions: discordgo.PermissionAdministrator,
		},
	}}
	a := actorFrom(i)
	assert.Equal(t, "1", a.UserID)
	assert.Equal(t, "Ivan | 12345", a.DisplayName)
	assert.Equal(t, []string{"r1"}, a.RoleIDs)
	assert.True(t, a.IsAdmin)

	assert.Equal(t, entities.Actor{}, actorFrom(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}
