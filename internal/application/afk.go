package application

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
)

const maxHoursLength = 3

var _ input.AfkUseCase = (*AfkService)(nil)

type AfkService struct {
	log     output.AfkLog
	limiter *UserLimiter
	now     func() time.Time
}

func NewAfkService(log output.AfkLog, limiter *UserLimiter) *AfkService {
	return &AfkService{log: log, limiter: limiter, now: time.Now}
}

// Mark publie une absence de hours heures (décimal, virgule acceptée).
func (s *AfkService) Mark(ctx context.Context, actor entities.Actor, hours, reason string) (*entities.AfkNotice, error) {
	h, err := parseHours(hours)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	if !s.limiter.Allow(actor.UserID) {
		return nil, domain.ErrRateLimited
	}

	start := s.now()
	notice := &entities.AfkNotice{
		UserID: actor.UserID,
		Name:   actor.Name(),
		Hours:  h,
		Reason: reason,
		Start:  start,
		End:    start.Add(time.Duration(h * float64(time.Hour))),
	}
	if err := s.log.Post(ctx, notice); err != nil {
		return nil, fmt.Errorf("post afk notice: %w", err)
	}
	return notice, nil
}

func parseHours(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if n := utf8.RuneCountInString(raw); n == 0 || n > maxHoursLength {
		return 0, domain.ErrInvalidHours
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil || h <= 0 || math.IsInf(h, 0) || math.IsNaN(h) {
		return 0, domain.ErrInvalidHours
	}
	return h, nil
}
