package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.MemberRepository = (*MemberRepository)(nil)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Upsert : xmax = 0 distingue une insertion d'une mise à jour.
func (r *MemberRepository) Upsert(ctx context.Context, m *entities.Member) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO members (id, display_name, game_static, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			game_static = EXCLUDED.game_static,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`,
		m.ID, m.DisplayName, m.GameStatic, m.UpdatedAt).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert member %s: %w", m.ID, err)
	}
	return inserted, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete member %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*entities.Member, error) {
	return r.findOne(ctx, `SELECT id, display_name, game_static, updated_at FROM members WHERE id = $1`, id)
}

func (r *MemberRepository) FindByStatic(ctx context.Context, static string) (*entities.Member, error) {
	return r.findOne(ctx, `
		SELECT id, display_name, game_static, updated_at FROM members
		WHERE game_static = $1 ORDER BY updated_at DESC LIMIT 1`, static)
}

func (r *MemberRepository) findOne(ctx context.Context, query, arg string) (*entities.Member, error) {
	var m entities.Member
	err := r.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &m.DisplayName, &m.GameStatic, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]entities.Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, display_name, game_static, updated_at FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Member, error) {
		var m entities.Member
		err := row.Scan(&m.ID, &m.DisplayName, &m.GameStatic, &m.UpdatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}
