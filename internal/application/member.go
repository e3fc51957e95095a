package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/input"
	"musterbot/internal/ports/output"
)

var _ input.MemberUseCase = (*MemberService)(nil)

// MemberService tient le registre des membres et de leurs statiques de jeu.
type MemberService struct {
	repo output.MemberRepository
	now  func() time.Time
}

func NewMemberService(repo output.MemberRepository) *MemberService {
	return &MemberService{repo: repo, now: time.Now}
}

// Sync aligne le registre sur la liste des membres du serveur. Seuls les
// nouveaux membres et les pseudos modifiés sont écrits.
func (s *MemberService) Sync(ctx context.Context, members []entities.Member) (added, updated int, err error) {
	known, err := s.repo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list members: %w", err)
	}
	names := make(map[string]string, len(known))
	for _, m := range known {
		names[m.ID] = m.DisplayName
	}

	for _, m := range members {
		name, exists := names[m.ID]
		if exists && name == m.DisplayName {
			continue
		}
		if err := s.Upsert(ctx, m.ID, m.DisplayName); err != nil {
			return added, updated, err
		}
		if exists {
			updated++
		} else {
			added++
		}
	}
	return added, updated, nil
}

func (s *MemberService) Upsert(ctx context.Context, id, displayName string) error {
	m := &entities.Member{
		ID:          id,
		DisplayName: displayName,
		GameStatic:  domain.ParseGameStatic(displayName),
		UpdatedAt:   s.now(),
	}
	if _, err := s.repo.Upsert(ctx, m); err != nil {
		return fmt.Errorf("upsert member %s: %w", id, err)
	}
	return nil
}

func (s *MemberService) Remove(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *MemberService) FindByStatic(ctx context.Context, static string) (*entities.Member, error) {
	static = strings.TrimSpace(static)
	if static == "" {
		return nil, domain.ErrMemberNotFound
	}
	return s.repo.FindByStatic(ctx, static)
}

// ResolveStatics associe chaque statique trouvé dans text au membre qui le
// porte. Un statique inconnu garde un Member nil.
func (s *MemberService) ResolveStatics(ctx context.Context, text string) ([]input.StaticMatch, error) {
	statics := domain.ExtractStatics(text)
	out := make([]input.StaticMatch, 0, len(statics))
	for _, static := range statics {
		m, err := s.repo.FindByStatic(ctx, static)
		if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
			return nil, fmt.Errorf("find member by static %s: %w", static, err)
		}
		out = append(out, input.StaticMatch{Static: static, Member: m})
	}
	return out, nil
}
