package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
)

const (
	pingRepeat   = 5
	pingLifetime = 5 * time.Minute
)

var _ input.PingUseCase = (*PingService)(nil)

// PingService envoie les salves d'appels de groupe et les supprime après
// pingLifetime.
type PingService struct {
	repo    output.PingRepository
	board   output.PingBoard
	limiter *UserLimiter
	now     func() time.Time
}

func NewPingService(repo output.PingRepository, board output.PingBoard, limiter *UserLimiter) *PingService {
	return &PingService{repo: repo, board: board, limiter: limiter, now: time.Now}
}

func (s *PingService) Schedule(ctx context.Context, in input.SchedulePingInput) (*entities.PingGroup, error) {
	clock := strings.TrimSpace(in.Time)
	if !domain.ValidClock(clock) {
		return nil, domain.ErrInvalidTime
	}
	title := strings.TrimSpace(in.Title)
	if in.Kind == entities.PingCustom {
		if n := utf8.RuneCountInString(title); n == 0 || n > maxMusterNameLength {
			return nil, domain.ErrInvalidName
		}
	} else if title == "" {
		title = string(in.Kind)
	}
	if !s.limiter.Allow(in.Creator.UserID) {
		return nil, domain.ErrRateLimited
	}

	now := s.now()
	g := &entities.PingGroup{
		ID:        uuid.NewString(),
		Kind:      in.Kind,
		Title:     title,
		Time:      clock,
		CreatorID: in.Creator.UserID,
		ChannelID: in.ChannelID,
		CreatedAt: now,
		DeleteAt:  now.Add(pingLifetime),
	}

	var sent []entities.PingMessage
	var sendErr error
	for range pingRepeat {
		messageID, err := s.board.Send(ctx, g)
		if err != nil {
			sendErr = fmt.Errorf("send ping: %w", err)
			break
		}
		sent = append(sent, entities.PingMessage{
			GroupID:   g.ID,
			MessageID: messageID,
			ChannelID: g.ChannelID,
			Kind:      g.Kind,
			CreatorID: g.CreatorID,
			CreatedAt: now,
			DeleteAt:  g.DeleteAt,
		})
	}
	// Les messages déjà partis sont enregistrés pour être nettoyés.
	if len(sent) > 0 {
		if err := s.repo.SaveMessages(ctx, sent); err != nil {
			return nil, errors.Join(sendErr, fmt.Errorf("save ping messages: %w", err))
		}
	}
	if sendErr != nil {
		return nil, sendErr
	}

	if err := s.board.Log(ctx, g); err != nil {
		slog.WarnContext(ctx, "⚠️ Journal des appels indisponible", "group_id", g.ID, tint.Err(err))
	}
	return g, nil
}

// SweepDue supprime les messages arrivés à échéance. La ligne est retirée
// même si la suppression côté plateforme échoue.
func (s *PingService) SweepDue(ctx context.Context) (int, error) {
	due, err := s.repo.Due(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("list due pings: %w", err)
	}
	var errs []error
	deleted := 0
	for _, m := range due {
		if err := s.board.Delete(ctx, m.ChannelID, m.MessageID); err != nil && !errors.Is(err, domain.ErrMessageGone) {
			slog.WarnContext(ctx, "⚠️ Suppression du message d'appel impossible", "message_id", m.MessageID, tint.Err(err))
		}
		if err := s.repo.DeleteMessage(ctx, m.MessageID); err != nil {
			errs = append(errs, fmt.Errorf("delete ping row %s: %w", m.MessageID, err))
			continue
		}
		deleted++
	}
	return deleted, errors.Join(errs...)
}
