package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.PingRepository = (*PingRepository)(nil)

type PingRepository struct {
	pool *pgxpool.Pool
}

func NewPingRepository(pool *pgxpool.Pool) *PingRepository {
	return &PingRepository{pool: pool}
}

func (r *PingRepository) SaveMessages(ctx context.Context, msgs []entities.PingMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range msgs {
			m := &msgs[i]
			err := tx.QueryRow(ctx, `
				INSERT INTO ping_messages (group_id, message_id, channel_id, kind, creator_id, created_at, delete_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
				m.GroupID, m.MessageID, m.ChannelID, string(m.Kind), m.CreatorID, m.CreatedAt, m.DeleteAt).Scan(&m.ID)
			if err != nil {
				return fmt.Errorf("insert ping %s: %w", m.MessageID, err)
			}
		}
		return nil
	})
}

func (r *PingRepository) Due(ctx context.Context, now time.Time) ([]entities.PingMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, message_id, channel_id, kind, creator_id, created_at, delete_at
		FROM ping_messages WHERE delete_at <= $1 ORDER BY delete_at, id`, now)
	if err != nil {
		return nil, fmt.Errorf("list due pings: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.PingMessage, error) {
		var m entities.PingMessage
		var kind string
		err := row.Scan(&m.ID, &m.GroupID, &m.MessageID, &m.ChannelID, &kind, &m.CreatorID, &m.CreatedAt, &m.DeleteAt)
		m.Kind = entities.PingKind(kind)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("list due pings: %w", err)
	}
	return out, nil
}

func (r *PingRepository) DeleteMessage(ctx context.Context, messageID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM ping_messages WHERE message_id = $1`, messageID); err != nil {
		return fmt.Errorf("delete ping %s: %w", messageID, err)
	}
	return nil
}
