package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"musterbot/internal/domain"
	"musterbot/internal/domain/entities"
	"musterbot/internal/ports/output"
)

var _ output.TicketRepository = (*TicketRepository)(nil)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Save(ctx context.Context, t *entities.Ticket) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("encode ticket fields: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tickets (message_id, channel_id, kind, author_id, author_name, fields, approve_button_id, reject_button_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9)
		ON CONFLICT (message_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			author_name = EXCLUDED.author_name,
			fields = EXCLUDED.fields`,
		t.MessageID, t.ChannelID, string(t.Kind), t.AuthorID, t.AuthorName, string(fields),
		t.ApproveButtonID, t.RejectButtonID, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ticket %s: %w", t.MessageID, err)
	}
	return nil
}

func (r *TicketRepository) FindByButtonID(ctx context.Context, buttonID string) (*entities.Ticket, error) {
	var (
		t      entities.Ticket
		kind   string
		fields []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT message_id, channel_id, kind, author_id, author_name, fields, approve_button_id, reject_button_id, created_at
		FROM tickets WHERE approve_button_id = $1 OR reject_button_id = $1`, buttonID).
		Scan(&t.MessageID, &t.ChannelID, &kind, &t.AuthorID, &t.AuthorName, &fields,
			&t.ApproveButtonID, &t.RejectButtonID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket by button %s: %w", buttonID, err)
	}
	t.Kind = entities.TicketKind(kind)
	if err := json.Unmarshal(fields, &t.Fields); err != nil {
		return nil, fmt.Errorf("decode ticket fields: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) Delete(ctx context.Context, messageID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE message_id = $1`, messageID); err != nil {
		return fmt.Errorf("delete ticket %s: %w", messageID, err)
	}
	return nil
}

func (r *TicketRepository) AppendDecision(ctx context.Context, d *entities.Decision) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ticket_decisions (message_id, channel_id, kind, author_id, moderator_id, action, reason, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		d.MessageID, d.ChannelID, string(d.Kind), d.AuthorID, d.ModeratorID, string(d.Action), d.Reason, d.DecidedAt).
		Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert decision for %s: %w", d.MessageID, err)
	}
	return nil
}

func (r *TicketRepository) ListDecisions(ctx context.Context, messageID string) ([]entities.Decision, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, message_id, channel_id, kind, author_id, moderator_id, action, reason, decided_at
		FROM ticket_decisions WHERE message_id = $1 ORDER BY id`, messageID)
	if err != nil {
		return nil, fmt.Errorf("list decisions %s: %w", messageID, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Decision, error) {
		var d entities.Decision
		var kind, action string
		err := row.Scan(&d.ID, &d.MessageID, &d.ChannelID, &kind, &d.AuthorID, &d.ModeratorID, &action, &d.Reason, &d.DecidedAt)
		d.Kind, d.Action = entities.TicketKind(kind), entities.DecisionAction(action)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("list decisions %s: %w", messageID, err)
	}
	return out, nil
}
