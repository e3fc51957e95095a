package sqlitestore

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	"musterbot/internal/ports/output"
)

var _ output.MusterRepository = (*MusterRepository)(nil)

type MusterRepository struct {
	pool *Pool
}

func NewMusterRepository(pool *Pool) *MusterRepository {
	return &MusterRepository{pool: pool}
}

const musterColumns = `id, name, creator_id, creator_name, scheduled_at, slots, guild_id, channel_id, thread_id, created_at`

// Save remplace le rassemblement et réécrit ses deux listes dans une transaction.
func (r *MusterRepository) Save(ctx context.Context, m *entities.Muster) (err error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	endTx, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("begin save muster: %w", err)
	}
	defer endTx(&err)

	err = sqlitex.Execute(conn, `
		INSERT INTO musters (`+musterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			creator_id = excluded.creator_id,
			creator_name = excluded.creator_name,
			scheduled_at = excluded.scheduled_at,
			slots = excluded.slots,
			guild_id = excluded.guild_id,
			channel_id = excluded.channel_id,
			thread_id = excluded.thread_id`,
		&sqlitex.ExecOptions{Args: []any{
			m.ID, m.Name, m.CreatorID, m.CreatorName, toMillis(m.ScheduledAt), int64(m.Slots),
			m.GuildID, m.ChannelID, m.ThreadID, toMillis(m.CreatedAt),
		}})
	if err != nil {
		return fmt.Errorf("upsert muster %s: %w", m.ID, err)
	}

	err = sqlitex.Execute(conn, `DELETE FROM muster_members WHERE muster_id = ?`,
		&sqlitex.ExecOptions{Args: []any{m.ID}})
	if err != nil {
		return fmt.Errorf("clear muster members %s: %w", m.ID, err)
	}
	if err = insertEntries(conn, m.ID, m.Primary, false); err != nil {
		return err
	}
	return insertEntries(conn, m.ID, m.Overflow, true)
}

func insertEntries(conn *sqlite.Conn, musterID string, entries []roster.Entry, overflow bool) error {
	var flag int64
	if overflow {
		flag = 1
	}
	for pos, e := range entries {
		err := sqlitex.Execute(conn, `
			INSERT INTO muster_members (muster_id, overflow, position, user_id, display_name)
			VALUES (?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{musterID, flag, int64(pos), e.UserID, e.DisplayName}})
		if err != nil {
			return fmt.Errorf("insert muster member %s/%s: %w", musterID, e.UserID, err)
		}
	}
	return nil
}

func (r *MusterRepository) FindByID(ctx context.Context, id string) (*entities.Muster, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var found *entities.Muster
	err = sqlitex.Execute(conn, `SELECT `+musterColumns+` FROM musters WHERE id = ?`, &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			m := scanMuster(stmt)
			found = &m
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get muster %s: %w", id, err)
	}
	if found == nil {
		return nil, domain.ErrMusterNotFound
	}
	if err := loadEntries(conn, map[string]*entities.Muster{found.ID: found}, found.ID); err != nil {
		return nil, err
	}
	return found, nil
}

func (r *MusterRepository) List(ctx context.Context) ([]entities.Muster, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var out []entities.Muster
	err = sqlitex.Execute(conn, `SELECT `+musterColumns+` FROM musters ORDER BY scheduled_at, id`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, scanMuster(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list musters: %w", err)
	}
	byID := make(map[string]*entities.Muster, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	if err := loadEntries(conn, byID, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// loadEntries remplit les listes des rassemblements de byID. Si only est
// renseigné, seules ses lignes sont lues.
func loadEntries(conn *sqlite.Conn, byID map[string]*entities.Muster, only string) error {
	if len(byID) == 0 {
		return nil
	}
	query := `SELECT muster_id, overflow, user_id, display_name FROM muster_members ORDER BY muster_id, overflow, position`
	var args []any
	if only != "" {
		query = `SELECT muster_id, overflow, user_id, display_name FROM muster_members WHERE muster_id = ? ORDER BY overflow, position`
		args = []any{only}
	}
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			m, ok := byID[stmt.ColumnText(0)]
			if !ok {
				return nil
			}
			e := roster.Entry{UserID: stmt.ColumnText(2), DisplayName: stmt.ColumnText(3)}
			if stmt.ColumnInt64(1) != 0 {
				m.Overflow = append(m.Overflow, e)
			} else {
				m.Primary = append(m.Primary, e)
			}
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("load muster members: %w", err)
	}
	return nil
}

func scanMuster(stmt *sqlite.Stmt) entities.Muster {
	return entities.Muster{
		ID:          stmt.ColumnText(0),
		Name:        stmt.ColumnText(1),
		CreatorID:   stmt.ColumnText(2),
		CreatorName: stmt.ColumnText(3),
		ScheduledAt: fromMillis(stmt.ColumnInt64(4)),
		Slots:       stmt.ColumnInt(5),
		GuildID:     stmt.ColumnText(6),
		ChannelID:   stmt.ColumnText(7),
		ThreadID:    stmt.ColumnText(8),
		CreatedAt:   fromMillis(stmt.ColumnInt64(9)),
	}
}

func (r *MusterRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM musters WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("delete muster %s: %w", id, err)
	}
	return nil
}

func (r *MusterRepository) DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM musters WHERE created_at < ?`, &sqlitex.ExecOptions{Args: []any{toMillis(t)}})
	if err != nil {
		return 0, fmt.Errorf("delete musters created before %s: %w", t.Format(time.RFC3339), err)
	}
	return int64(conn.Changes()), nil
}
