package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
)

func TestPingService_Schedule(t *testing.T) {
	repo := &fakePingRepo{}
	board := &fakePingBoard{}
	svc := NewPingService(repo, board, nil)
	now := time.Date(2025, time.May, 1, 18, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	g, err := svc.Schedule(context.Background(), input.SchedulePingInput{
		Kind:      entities.PingSupply,
		Title:     "Поставка",
		Time:      "19:30",
		Creator:   entities.Actor{UserID: "u"},
		ChannelID: "groups",
	})
	require.NoError(t, err)

	assert.Equal(t, "Поставка", g.Title)
	assert.Equal(t, now.Add(5*time.Minute), g.DeleteAt)
	assert.Equal(t, 5, board.sent)
	assert.Equal(t, 1, board.logged)
	require.Len(t, repo.messages, 5)
	for _, m := range repo.messages {
		assert.Equal(t, g.ID, m.GroupID)
		assert.Equal(t, "groups", m.ChannelID)
		assert.Equal(t, g.DeleteAt, m.DeleteAt)
	}
}

func TestPingService_ScheduleValidation(t *testing.T) {
	svc := NewPingService(&fakePingRepo{}, &fakePingBoard{}, nil)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, input.SchedulePingInput{Kind: entities.PingDrop, Time: "25:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidTime)

	_, err = svc.Schedule(ctx, input.SchedulePingInput{Kind: entities.PingCustom, Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	g, err := svc.Schedule(ctx, input.SchedulePingInput{Kind: entities.PingDrop, Time: "9:05"})
	require.NoError(t, err)
	assert.Equal(t, "drop", g.Title)
}

func TestPingService_SchedulePartialFailureKeepsSentMessages(t *testing.T) {
	repo := &fakePingRepo{}
	board := &fakePingBoard{failAfter: 2}
	svc := NewPingService(repo, board, nil)

	_, err := svc.Schedule(context.Background(), input.SchedulePingInput{Kind: entities.PingDealers, Time: "10:00"})

	require.Error(t, err)
	assert.Len(t, repo.messages, 2)
	assert.Zero(t, board.logged)
}

func TestPingService_SweepDue(t *testing.T) {
	now := time.Date(2025, time.May, 1, 18, 0, 0, 0, time.UTC)
	repo := &fakePingRepo{messages: []entities.PingMessage{
		{MessageID: "due", DeleteAt: now.Add(-time.Second)},
		{MessageID: "gone", DeleteAt: now},
		{MessageID: "forbidden", DeleteAt: now.Add(-time.Minute)},
		{MessageID: "later", DeleteAt: now.Add(time.Minute)},
	}}
	board := &fakePingBoard{deleteErr: map[string]error{
		"gone":      domain.ErrMessageGone,
		"forbidden": assert.AnError,
	}}
	svc := NewPingService(repo, board, nil)
	svc.now = fixedClock(now)

	n, err := svc.SweepDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"due"}, board.deleted)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "later", repo.messages[0].MessageID)
}
