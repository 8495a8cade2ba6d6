package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
)

// MessageRepo implements MessageRepository using PostgreSQL.
type MessageRepo struct{ db *DB }

// NewMessageRepo constructs a message repository.
func NewMessageRepo(db *DB) *MessageRepo { return &MessageRepo{db: db} }

// Create inserts a message row and returns it with the assigned id and sent_at.
func (r *MessageRepo) Create(ctx context.Context, from, to, body string) (*model.Message, error) {
	const q = `
INSERT INTO messages (from_username, to_username, body, sent_at)
VALUES ($1, $2, $3, now())
RETURNING id, sent_at`
	m := &model.Message{FromUsername: from, ToUsername: to, Body: body}
	if err := r.db.Pool.QueryRow(ctx, q, from, to, body).Scan(&m.ID, &m.SentAt); err != nil {
		if isForeignKeyViolation(err) {
			// unknown from/to username
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetByID selects a message with both participant summaries joined.
func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*model.MessageView, error) {
	const q = `
SELECT m.id, m.body, m.sent_at, m.read_at,
       f.username, f.first_name, f.last_name, f.phone,
       t.username, t.first_name, t.last_name, t.phone
FROM messages AS m
INNER JOIN users AS f ON f.username = m.from_username
INNER JOIN users AS t ON t.username = m.to_username
WHERE m.id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var (
		v    model.MessageView
		from model.UserSummary
		to   model.UserSummary
	)
	err := row.Scan(
		&v.ID, &v.Body, &v.SentAt, &v.ReadAt,
		&from.Username, &from.FirstName, &from.LastName, &from.Phone,
		&to.Username, &to.FirstName, &to.LastName, &to.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	v.From, v.To = &from, &to
	return &v, nil
}

// MarkRead sets read_at to now and returns the new timestamp.
func (r *MessageRepo) MarkRead(ctx context.Context, id int64) (time.Time, error) {
	const q = `
UPDATE messages SET read_at = now() WHERE id=$1 RETURNING read_at`
	var readAt time.Time
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&readAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, errs.ErrNotFound
		}
		return time.Time{}, err
	}
	return readAt, nil
}

// ListFrom returns messages sent by username, each joined with its recipient summary.
func (r *MessageRepo) ListFrom(ctx context.Context, username string) ([]model.MessageView, error) {
	const q = `
SELECT m.id, m.body, m.sent_at, m.read_at,
       u.username, u.first_name, u.last_name, u.phone
FROM messages AS m
INNER JOIN users AS u ON u.username = m.to_username
WHERE m.from_username=$1`
	return r.list(ctx, q, username, false)
}

// ListTo returns messages received by username, each joined with its sender summary.
func (r *MessageRepo) ListTo(ctx context.Context, username string) ([]model.MessageView, error) {
	const q = `
SELECT m.id, m.body, m.sent_at, m.read_at,
       u.username, u.first_name, u.last_name, u.phone
FROM messages AS m
INNER JOIN users AS u ON u.username = m.from_username
WHERE m.to_username=$1`
	return r.list(ctx, q, username, true)
}

// list runs one of the listing queries; the joined summary lands on the From
// side when fromSide is true, otherwise on the To side.
func (r *MessageRepo) list(ctx context.Context, q, username string, fromSide bool) ([]model.MessageView, error) {
	rows, err := r.db.Pool.Query(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MessageView
	for rows.Next() {
		var (
			v model.MessageView
			u model.UserSummary
		)
		err := rows.Scan(
			&v.ID, &v.Body, &v.SentAt, &v.ReadAt,
			&u.Username, &u.FirstName, &u.LastName, &u.Phone,
		)
		if err != nil {
			return nil, err
		}
		if fromSide {
			v.From = &u
		} else {
			v.To = &u
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
