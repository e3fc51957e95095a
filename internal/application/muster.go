package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lmittmann/tint"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
)

const (
	maxMusterNameLength = 100
	musterRetention     = 7 * 24 * time.Hour
)

var _ input.MusterUseCase = (*MusterService)(nil)

// MusterService gère le cycle de vie des rassemblements. Les rassemblements
// actifs sont gardés en mémoire et chaque mutation est persistée.
type MusterService struct {
	repo      output.MusterRepository
	board     output.MusterBoard
	directory output.MemberDirectory
	hierarchy domain.Hierarchy
	loc       *time.Location
	now       func() time.Time

	mu      sync.Mutex
	musters map[string]*entities.Muster
}

func NewMusterService(
	repo output.MusterRepository,
	board output.MusterBoard,
	directory output.MemberDirectory,
	hierarchy domain.Hierarchy,
	loc *time.Location,
) *MusterService {
	if loc == nil {
		loc = time.Local
	}
	return &MusterService{
		repo:      repo,
		board:     board,
		directory: directory,
		hierarchy: hierarchy,
		loc:       loc,
		now:       time.Now,
		musters:   make(map[string]*entities.Muster),
	}
}

func (s *MusterService) Create(ctx context.Context, in input.CreateMusterInput) (*entities.Muster, error) {
	if !s.hierarchy.CanManage(in.Creator.RoleIDs, in.Creator.IsAdmin) {
		return nil, domain.ErrNotManager
	}
	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxMusterNameLength {
		return nil, domain.ErrInvalidName
	}
	if in.Slots < 1 {
		return nil, domain.ErrInvalidSlots
	}
	scheduledAt, err := domain.ParseMusterTime(strings.TrimSpace(in.DateTime), s.loc)
	if err != nil {
		return nil, err
	}

	m := &entities.Muster{
		Name:        name,
		CreatorID:   in.Creator.UserID,
		CreatorName: in.Creator.Name(),
		ScheduledAt: scheduledAt,
		Slots:       in.Slots,
		GuildID:     in.GuildID,
		ChannelID:   in.ChannelID,
		CreatedAt:   s.now(),
	}
	messageID, threadID, err := s.board.Publish(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("publish muster: %w", err)
	}
	m.ID = messageID
	m.ThreadID = threadID

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save muster: %w", err)
	}

	s.mu.Lock()
	s.musters[m.ID] = m
	s.mu.Unlock()
	return m.Clone(), nil
}

func (s *MusterService) Get(ctx context.Context, id string) (*entities.Muster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// List renvoie les rassemblements actifs, du plus proche au plus lointain.
func (s *MusterService) List(_ context.Context) ([]entities.Muster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Muster, 0, len(s.musters))
	for _, m := range s.musters {
		out = append(out, *m.Clone())
	}
	slices.SortFunc(out, func(a, b entities.Muster) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return out, nil
}

func (s *MusterService) Join(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error) {
	return s.mutate(ctx, id, actor, func(r *roster.Roster, e roster.Entry) roster.Result {
		return r.Join(e)
	})
}

func (s *MusterService) JoinOverflow(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error) {
	return s.mutate(ctx, id, actor, func(r *roster.Roster, e roster.Entry) roster.Result {
		return r.JoinOverflow(e)
	})
}

func (s *MusterService) Leave(ctx context.Context, id string, actor entities.Actor) (roster.Result, *entities.Muster, error) {
	return s.mutate(ctx, id, actor, func(r *roster.Roster, e roster.Entry) roster.Result {
		return r.Leave(e.UserID)
	})
}

func (s *MusterService) mutate(
	ctx context.Context,
	id string,
	actor entities.Actor,
	op func(*roster.Roster, roster.Entry) roster.Result,
) (roster.Result, *entities.Muster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load(ctx, id)
	if err != nil {
		return roster.Result{}, nil, err
	}

	r := roster.New(m.Slots, m.Primary, m.Overflow, s.rankFunc(ctx, m.GuildID, actor))
	res := op(r, roster.Entry{UserID: actor.UserID, DisplayName: actor.Name()})
	if res.Outcome == roster.AlreadyPresent || res.Outcome == roster.NotFound {
		return res, m.Clone(), nil
	}

	prevPrimary, prevOverflow := m.Primary, m.Overflow
	m.Primary, m.Overflow = r.Primary, r.Overflow
	if err := s.repo.Save(ctx, m); err != nil {
		m.Primary, m.Overflow = prevPrimary, prevOverflow
		return roster.Result{}, nil, fmt.Errorf("save muster: %w", err)
	}
	return res, m.Clone(), nil
}

// rankFunc résout le rang de l'appelant depuis ses rôles connus, et celui des
// autres membres via l'annuaire. Un membre introuvable n'a aucun rang.
func (s *MusterService) rankFunc(ctx context.Context, guildID string, actor entities.Actor) domain.RankFunc {
	return func(userID string) domain.Rank {
		if userID == actor.UserID {
			return s.hierarchy.Resolve(actor.RoleIDs)
		}
		roles, err := s.directory.Roles(ctx, guildID, userID)
		if err != nil {
			slog.WarnContext(ctx, "⚠️ Rôles du membre indisponibles", "user_id", userID, tint.Err(err))
			return domain.RankNone
		}
		return s.hierarchy.Resolve(roles)
	}
}

func (s *MusterService) Close(ctx context.Context, id string, actor entities.Actor) error {
	if !s.hierarchy.CanManage(actor.RoleIDs, actor.IsAdmin) {
		return domain.ErrNotManager
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.board.Archive(ctx, m, output.ArchiveClosed); err != nil && !errors.Is(err, domain.ErrMessageGone) {
		return fmt.Errorf("archive muster: %w", err)
	}
	return s.remove(ctx, id)
}

// CloseExpired archive puis supprime chaque rassemblement dont l'heure est
// dépassée. Un message disparu est simplement oublié ; toute autre erreur de
// la plateforme laisse le rassemblement pour le passage suivant.
func (s *MusterService) CloseExpired(ctx context.Context) ([]entities.Muster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []*entities.Muster
	for _, m := range s.musters {
		if m.IsExpired(now) {
			expired = append(expired, m)
		}
	}
	slices.SortFunc(expired, func(a, b *entities.Muster) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})

	var closed []entities.Muster
	var errs []error
	for _, m := range expired {
		err := s.board.Archive(ctx, m, output.ArchiveExpired)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrMessageGone):
			slog.WarnContext(ctx, "⚠️ Message du rassemblement introuvable, suppression", "muster_id", m.ID, "name", m.Name)
		default:
			slog.ErrorContext(ctx, "❌ Archivage du rassemblement impossible", "muster_id", m.ID, tint.Err(err))
			continue
		}
		if err := s.remove(ctx, m.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		closed = append(closed, *m.Clone())
	}
	return closed, errors.Join(errs...)
}

// Restore purge les rassemblements de plus de 7 jours et ceux dont le message
// a disparu, puis recharge les autres.
func (s *MusterService) Restore(ctx context.Context) (int, error) {
	purged, err := s.repo.DeleteCreatedBefore(ctx, s.now().Add(-musterRetention))
	if err != nil {
		return 0, fmt.Errorf("purge old musters: %w", err)
	}
	if purged > 0 {
		slog.InfoContext(ctx, "🧹 Anciens rassemblements supprimés", "count", purged)
	}

	musters, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list musters: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.musters = make(map[string]*entities.Muster, len(musters))
	for i := range musters {
		m := &musters[i]
		if err := s.board.Check(ctx, m); err != nil {
			if errors.Is(err, domain.ErrMessageGone) {
				slog.WarnContext(ctx, "⚠️ Message du rassemblement introuvable, suppression", "muster_id", m.ID, "name", m.Name)
				if err := s.repo.Delete(ctx, m.ID); err != nil {
					return 0, fmt.Errorf("delete muster %s: %w", m.ID, err)
				}
				continue
			}
			// Plateforme indisponible : le rassemblement est gardé.
			slog.WarnContext(ctx, "⚠️ Vérification du message impossible", "muster_id", m.ID, tint.Err(err))
		}
		s.musters[m.ID] = m.Clone()
	}
	return len(s.musters), nil
}

// load doit être appelé sous s.mu.
func (s *MusterService) load(ctx context.Context, id string) (*entities.Muster, error) {
	if m, ok := s.musters[id]; ok {
		return m, nil
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.musters[id] = m
	return m, nil
}

// remove doit être appelé sous s.mu.
func (s *MusterService) remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete muster: %w", err)
	}
	delete(s.musters, id)
	return nil
}
