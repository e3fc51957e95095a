package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/domain/roster"
	"musterbot/internal/ports/output"
)

var _ output.MusterRepository = (*MusterRepository)(nil)

type MusterRepository struct {
	pool *pgxpool.Pool
}

func NewMusterRepository(pool *pgxpool.Pool) *MusterRepository {
	return &MusterRepository{pool: pool}
}

const musterColumns = `id, name, creator_id, creator_name, scheduled_at, slots, guild_id, channel_id, thread_id, created_at`

func (r *MusterRepository) Save(ctx context.Context, m *entities.Muster) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO musters (`+musterColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				creator_id = EXCLUDED.creator_id,
				creator_name = EXCLUDED.creator_name,
				scheduled_at = EXCLUDED.scheduled_at,
				slots = EXCLUDED.slots,
				guild_id = EXCLUDED.guild_id,
				channel_id = EXCLUDED.channel_id,
				thread_id = EXCLUDED.thread_id`,
			m.ID, m.Name, m.CreatorID, m.CreatorName, m.ScheduledAt, m.Slots,
			m.GuildID, m.ChannelID, m.ThreadID, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert muster %s: %w", m.ID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM muster_members WHERE muster_id = $1`, m.ID); err != nil {
			return fmt.Errorf("clear muster members %s: %w", m.ID, err)
		}

		batch := &pgx.Batch{}
		queue := func(entries []roster.Entry, overflow bool) {
			for pos, e := range entries {
				batch.Queue(`
					INSERT INTO muster_members (muster_id, overflow, position, user_id, display_name)
					VALUES ($1, $2, $3, $4, $5)`, m.ID, overflow, pos, e.UserID, e.DisplayName)
			}
		}
		queue(m.Primary, false)
		queue(m.Overflow, true)
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert muster members %s: %w", m.ID, err)
		}
		return nil
	})
}

func (r *MusterRepository) FindByID(ctx context.Context, id string) (*entities.Muster, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+musterColumns+` FROM musters WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get muster %s: %w", id, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanMuster)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMusterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get muster %s: %w", id, err)
	}
	if err := r.loadEntries(ctx, map[string]*entities.Muster{m.ID: &m}); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MusterRepository) List(ctx context.Context) ([]entities.Muster, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+musterColumns+` FROM musters ORDER BY scheduled_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list musters: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanMuster)
	if err != nil {
		return nil, fmt.Errorf("list musters: %w", err)
	}
	byID := make(map[string]*entities.Muster, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	if err := r.loadEntries(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MusterRepository) loadEntries(ctx context.Context, byID map[string]*entities.Muster) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT muster_id, overflow, user_id, display_name FROM muster_members
		WHERE muster_id = ANY($1) ORDER BY muster_id, overflow, position`, ids)
	if err != nil {
		return fmt.Errorf("load muster members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var musterID string
		var overflow bool
		var e roster.Entry
		if err := rows.Scan(&musterID, &overflow, &e.UserID, &e.DisplayName); err != nil {
			return fmt.Errorf("scan muster member: %w", err)
		}
		m := byID[musterID]
		if overflow {
			m.Overflow = append(m.Overflow, e)
		} else {
			m.Primary = append(m.Primary, e)
		}
	}
	return rows.Err()
}

func scanMuster(row pgx.CollectableRow) (entities.Muster, error) {
	var m entities.Muster
	err := row.Scan(&m.ID, &m.Name, &m.CreatorID, &m.CreatorName, &m.ScheduledAt, &m.Slots,
		&m.GuildID, &m.ChannelID, &m.ThreadID, &m.CreatedAt)
	return m, err
}

func (r *MusterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM musters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete muster %s: %w", id, err)
	}
	return nil
}

func (r *MusterRepository) DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM musters WHERE created_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("delete musters created before %s: %w", t.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}
