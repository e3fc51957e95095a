package sqlitestore

import (
	"context"
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.TicketRepository = (*TicketRepository)(nil)

type TicketRepository struct {
	pool *Pool
}

func NewTicketRepository(pool *Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Save(ctx context.Context, t *entities.Ticket) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("encode ticket fields: %w", err)
	}
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO tickets (message_id, channel_id, kind, author_id, author_name, fields, approve_button_id, reject_button_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (message_id) DO UPDATE SET
			channel_id = excluded.channel_id,
			author_name = excluded.author_name,
			fields = excluded.fields`,
		&sqlitex.ExecOptions{Args: []any{
			t.MessageID, t.ChannelID, string(t.Kind), t.AuthorID, t.AuthorName, string(fields),
			t.ApproveButtonID, t.RejectButtonID, toMillis(t.CreatedAt),
		}})
	if err != nil {
		return fmt.Errorf("insert ticket %s: %w", t.MessageID, err)
	}
	return nil
}

func (r *TicketRepository) FindByButtonID(ctx context.Context, buttonID string) (*entities.Ticket, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var found *entities.Ticket
	err = sqlitex.Execute(conn, `
		SELECT message_id, channel_id, kind, author_id, author_name, fields, approve_button_id, reject_button_id, created_at
		FROM tickets WHERE approve_button_id = ? OR reject_button_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{buttonID, buttonID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				t := &entities.Ticket{
					MessageID:       stmt.ColumnText(0),
					ChannelID:       stmt.ColumnText(1),
					Kind:            entities.TicketKind(stmt.ColumnText(2)),
					AuthorID:        stmt.ColumnText(3),
					AuthorName:      stmt.ColumnText(4),
					ApproveButtonID: stmt.ColumnText(6),
					RejectButtonID:  stmt.ColumnText(7),
					CreatedAt:       fromMillis(stmt.ColumnInt64(8)),
				}
				if err := json.Unmarshal([]byte(stmt.ColumnText(5)), &t.Fields); err != nil {
					return fmt.Errorf("decode ticket fields: %w", err)
				}
				found = t
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("get ticket by button %s: %w", buttonID, err)
	}
	if found == nil {
		return nil, domain.ErrTicketNotFound
	}
	return found, nil
}

func (r *TicketRepository) Delete(ctx context.Context, messageID string) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM tickets WHERE message_id = ?`, &sqlitex.ExecOptions{Args: []any{messageID}}); err != nil {
		return fmt.Errorf("delete ticket %s: %w", messageID, err)
	}
	return nil
}

func (r *TicketRepository) AppendDecision(ctx context.Context, d *entities.Decision) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO ticket_decisions (message_id, channel_id, kind, author_id, moderator_id, action, reason, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{
			d.MessageID, d.ChannelID, string(d.Kind), d.AuthorID, d.ModeratorID, string(d.Action), d.Reason, toMillis(d.DecidedAt),
		}})
	if err != nil {
		return fmt.Errorf("insert decision for %s: %w", d.MessageID, err)
	}
	d.ID = conn.LastInsertRowID()
	return nil
}

func (r *TicketRepository) ListDecisions(ctx context.Context, messageID string) ([]entities.Decision, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var out []entities.Decision
	err = sqlitex.Execute(conn, `
		SELECT id, message_id, channel_id, kind, author_id, moderator_id, action, reason, decided_at
		FROM ticket_decisions WHERE message_id = ? ORDER BY id`,
		&sqlitex.ExecOptions{
			Args: []any{messageID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				out = append(out, entities.Decision{
					ID:          stmt.ColumnInt64(0),
					MessageID:   stmt.ColumnText(1),
					ChannelID:   stmt.ColumnText(2),
					Kind:        entities.TicketKind(stmt.ColumnText(3)),
					AuthorID:    stmt.ColumnText(4),
					ModeratorID: stmt.ColumnText(5),
					Action:      entities.DecisionAction(stmt.ColumnText(6)),
					Reason:      stmt.ColumnText(7),
					DecidedAt:   fromMillis(stmt.ColumnInt64(8)),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list decisions %s: %w", messageID, err)
	}
	return out, nil
}
