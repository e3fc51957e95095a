package sqlitestore

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.MemberRepository = (*MemberRepository)(nil)

type MemberRepository struct {
	pool *Pool
}

func NewMemberRepository(pool *Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) Upsert(ctx context.Context, m *entities.Member) (created bool, err error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return false, err
	}
	defer r.pool.Put(conn)

	endTx, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return false, fmt.Errorf("begin upsert member: %w", err)
	}
	defer endTx(&err)

	exists := false
	err = sqlitex.Execute(conn, `SELECT 1 FROM members WHERE id = ?`, &sqlitex.ExecOptions{
		Args:       []any{m.ID},
		ResultFunc: func(*sqlite.Stmt) error { exists = true; return nil },
	})
	if err != nil {
		return false, fmt.Errorf("check member %s: %w", m.ID, err)
	}

	err = sqlitex.Execute(conn, `
		INSERT INTO members (id, display_name, game_static, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			game_static = excluded.game_static,
			updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{m.ID, m.DisplayName, m.GameStatic, toMillis(m.UpdatedAt)}})
	if err != nil {
		return false, fmt.Errorf("upsert member %s: %w", m.ID, err)
	}
	return !exists, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return false, err
	}
	defer r.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM members WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return false, fmt.Errorf("delete member %s: %w", id, err)
	}
	return conn.Changes() > 0, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*entities.Member, error) {
	return r.findOne(ctx, `SELECT id, display_name, game_static, updated_at FROM members WHERE id = ?`, id)
}

// FindByStatic renvoie le membre mis à jour le plus récemment si plusieurs
// portent le même statique.
func (r *MemberRepository) FindByStatic(ctx context.Context, static string) (*entities.Member, error) {
	return r.findOne(ctx, `
		SELECT id, display_name, game_static, updated_at FROM members
		WHERE game_static = ? ORDER BY updated_at DESC LIMIT 1`, static)
}

func (r *MemberRepository) findOne(ctx context.Context, query, arg string) (*entities.Member, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var found *entities.Member
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{arg},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			m := scanMember(stmt)
			found = &m
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if found == nil {
		return nil, domain.ErrMemberNotFound
	}
	return found, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]entities.Member, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var out []entities.Member
	err = sqlitex.Execute(conn, `SELECT id, display_name, game_static, updated_at FROM members ORDER BY id`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, scanMember(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

func scanMember(stmt *sqlite.Stmt) entities.Member {
	return entities.Member{
		ID:          stmt.ColumnText(0),
		DisplayName: stmt.ColumnText(1),
		GameStatic:  stmt.ColumnText(2),
		UpdatedAt:   fromMillis(stmt.ColumnInt64(3)),
	}
}
