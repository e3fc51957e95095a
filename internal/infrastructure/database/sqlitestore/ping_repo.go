package sqlitestore

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.PingRepository = (*PingRepository)(nil)

type PingRepository struct {
	pool *Pool
}

func NewPingRepository(pool *Pool) *PingRepository {
	return &PingRepository{pool: pool}
}

func (r *PingRepository) SaveMessages(ctx context.Context, msgs []entities.PingMessage) (err error) {
	if len(msgs) == 0 {
		return nil
	}
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	endTx, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("begin save pings: %w", err)
	}
	defer endTx(&err)

	for i := range msgs {
		m := &msgs[i]
		err = sqlitex.Execute(conn, `
			INSERT INTO ping_messages (group_id, message_id, channel_id, kind, creator_id, created_at, delete_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{
				m.GroupID, m.MessageID, m.ChannelID, string(m.Kind), m.CreatorID, toMillis(m.CreatedAt), toMillis(m.DeleteAt),
			}})
		if err != nil {
			return fmt.Errorf("insert ping %s: %w", m.MessageID, err)
		}
		m.ID = conn.LastInsertRowID()
	}
	return nil
}

func (r *PingRepository) Due(ctx context.Context, now time.Time) ([]entities.PingMessage, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var out []entities.PingMessage
	err = sqlitex.Execute(conn, `
		SELECT id, group_id, message_id, channel_id, kind, creator_id, created_at, delete_at
		FROM ping_messages WHERE delete_at <= ? ORDER BY delete_at, id`,
		&sqlitex.ExecOptions{
			Args: []any{toMillis(now)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				out = append(out, entities.PingMessage{
					ID:        stmt.ColumnInt64(0),
					GroupID:   stmt.ColumnText(1),
					MessageID: stmt.ColumnText(2),
					ChannelID: stmt.ColumnText(3),
					Kind:      entities.PingKind(stmt.ColumnText(4)),
					CreatorID: stmt.ColumnText(5),
					CreatedAt: fromMillis(stmt.ColumnInt64(6)),
					DeleteAt:  fromMillis(stmt.ColumnInt64(7)),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list due pings: %w", err)
	}
	return out, nil
}

func (r *PingRepository) DeleteMessage(ctx context.Context, messageID string) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM ping_messages WHERE message_id = ?`, &sqlitex.ExecOptions{Args: []any{messageID}}); err != nil {
		return fmt.Errorf("delete ping %s: %w", messageID, err)
	}
	return nil
}
