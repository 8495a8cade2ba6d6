// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/messagely/server/internal/model"
)

// UserRepository provides CRUD access for accounts, keyed by username.
type UserRepository interface {
	// Create inserts a new account. Duplicate usernames return errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByUsername loads an account by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// TouchLastLogin sets last_login_at to now.
	TouchLastLogin(ctx context.Context, username string) error
	// List returns summaries of all accounts, in storage order.
	List(ctx context.Context) ([]model.UserSummary, error)
}
