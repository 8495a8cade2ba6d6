package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new account row; join_at and last_login_at are set to now.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (username, password_hash, first_name, last_name, phone, join_at, last_login_at)
VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.db.Pool.Exec(ctx, q, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByUsername selects an account by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
SELECT username, password_hash, first_name, last_name, phone, join_at, last_login_at
FROM users WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)
	var u model.User
	err := row.Scan(&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// TouchLastLogin sets last_login_at to now for the given username.
func (r *UserRepo) TouchLastLogin(ctx context.Context, username string) error {
	const q = `
UPDATE users SET last_login_at = now() WHERE username=$1`
	tag, err := r.db.Pool.Exec(ctx, q, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns summaries of all accounts in storage order.
func (r *UserRepo) List(ctx context.Context) ([]model.UserSummary, error) {
	const q = `
SELECT username, first_name, last_name, phone FROM users`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
