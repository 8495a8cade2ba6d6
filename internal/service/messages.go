package service

import (
	"context"
	"fmt"
	"time"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
	"github.com/messagely/server/internal/repository"
)

// MessageService defines operations over individual messages.
type MessageService interface {
	// Send creates a message from one user to another.
	Send(ctx context.Context, from, to, body string) (*model.Message, error)
	// Get returns a message with both participant summaries.
	Get(ctx context.Context, id int64) (*model.MessageView, error)
	// MarkRead stamps read_at and returns the new timestamp. Calling it again
	// overwrites the previous stamp.
	MarkRead(ctx context.Context, id int64) (time.Time, error)
}

type MessageServiceImpl struct {
	messages repository.MessageRepository
}

// NewMessageService constructs MessageService over message storage.
func NewMessageService(messages repository.MessageRepository) *MessageServiceImpl {
	return &MessageServiceImpl{messages: messages}
}

// Send validates input and delegates creation to the repository. An unknown
// recipient surfaces as errs.ErrNotFound via the FK check there.
func (s *MessageServiceImpl) Send(ctx context.Context, from, to, body string) (*model.Message, error) {
	if from == "" {
		return nil, fmt.Errorf("empty sender: %w", errs.ErrValidation)
	}
	if to == "" || body == "" {
		return nil, fmt.Errorf("to_username and body are required: %w", errs.ErrValidation)
	}
	return s.messages.Create(ctx, from, to, body)
}

func (s *MessageServiceImpl) Get(ctx context.Context, id int64) (*model.MessageView, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *MessageServiceImpl) MarkRead(ctx context.Context, id int64) (time.Time, error) {
	return s.messages.MarkRead(ctx, id)
}
