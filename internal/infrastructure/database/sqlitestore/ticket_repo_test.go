package sqlitestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
)

func TestTicketRepository_Lifecycle(t *testing.T) {
	repo := NewTicketRepository(newTestPool(t))
	ctx := context.Background()
	created := time.Date(2025, time.May, 1, 9, 30, 0, 0, time.UTC)

	tk := &entities.Ticket{
		MessageID:       "m1",
		ChannelID:       "c1",
		Kind:            entities.TicketOrder,
		AuthorID:        "author",
		AuthorName:      "Вася",
		Fields:          []entities.TicketField{{Key: "order_type", Value: "Гровер I"}, {Key: "statics", Value: "12345"}},
		ApproveButtonID: "approve_0a1b2c3d",
		RejectButtonID:  "reject_4e5f6a7b",
		CreatedAt:       created,
	}
	require.NoError(t, repo.Save(ctx, tk))

	for _, button := range []string{tk.ApproveButtonID, tk.RejectButtonID} {
		got, err := repo.FindByButtonID(ctx, button)
		require.NoError(t, err)
		assert.Equal(t, tk.Fields, got.Fields)
		assert.Equal(t, entities.TicketOrder, got.Kind)
		assert.True(t, got.CreatedAt.Equal(created))
	}

	d := &entities.Decision{
		MessageID: "m1", ChannelID: "c1", Kind: tk.Kind, AuthorID: "author",
		ModeratorID: "mod", Action: entities.DecisionReject, Reason: "дубль", DecidedAt: created.Add(time.Hour),
	}
	require.NoError(t, repo.AppendDecision(ctx, d))
	assert.NotZero(t, d.ID)

	require.NoError(t, repo.Delete(ctx, "m1"))
	_, err := repo.FindByButtonID(ctx, tk.ApproveButtonID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	// Le journal survit à la demande.
	decisions, err := repo.ListDecisions(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, entities.DecisionReject, decisions[0].Action)
	assert.Equal(t, "дубль", decisions[0].Reason)
	assert.Equal(t, d.ID, decisions[0].ID)
}

func TestTicketRepository_ButtonIDsAreUnique(t *testing.T) {
	repo := NewTicketRepository(newTestPool(t))
	ctx := context.Background()

	first := &entities.Ticket{MessageID: "m1", ChannelID: "c", Kind: entities.TicketReport, AuthorID: "a",
		ApproveButtonID: "approve_11111111", RejectButtonID: "reject_11111111"}
	second := &entities.Ticket{MessageID: "m2", ChannelID: "c", Kind: entities.TicketReport, AuthorID: "a",
		ApproveButtonID: "approve_11111111", RejectButtonID: "reject_22222222"}

	require.NoError(t, repo.Save(ctx, first))
	assert.Error(t, repo.Save(ctx, second))
}
