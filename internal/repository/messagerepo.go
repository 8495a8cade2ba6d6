package repository

import (
	"context"
	"time"

	"github.com/messagely/server/internal/model"
)

// MessageRepository provides access to messages, keyed by id and username pairs.
type MessageRepository interface {
	// Create inserts a message and returns it with the assigned id and sent_at.
	// An unknown recipient returns errs.ErrNotFound.
	Create(ctx context.Context, from, to, body string) (*model.Message, error)
	// GetByID loads a message with both participant summaries joined.
	GetByID(ctx context.Context, id int64) (*model.MessageView, error)
	// MarkRead sets read_at to now and returns the new timestamp. Re-marking
	// overwrites the previous timestamp.
	MarkRead(ctx context.Context, id int64) (time.Time, error)
	// ListFrom returns messages sent by username, with recipient summaries.
	ListFrom(ctx context.Context, username string) ([]model.MessageView, error)
	// ListTo returns messages received by username, with sender summaries.
	ListTo(ctx context.Context, username string) ([]model.MessageView, error)
}
