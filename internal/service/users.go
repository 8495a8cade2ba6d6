package service

import (
	"context"
	"fmt"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
	"github.com/messagely/server/internal/repository"
)

// UserService defines read operations over accounts and their message listings.
type UserService interface {
	// List returns summaries of all accounts.
	List(ctx context.Context) ([]model.UserSummary, error)
	// Get returns the full account record for a username.
	Get(ctx context.Context, username string) (*model.User, error)
	// MessagesFrom returns messages sent by the user.
	MessagesFrom(ctx context.Context, username string) ([]model.MessageView, error)
	// MessagesTo returns messages received by the user.
	MessagesTo(ctx context.Context, username string) ([]model.MessageView, error)
}

type UserServiceImpl struct {
	users    repository.UserRepository
	messages repository.MessageRepository
}

// NewUserService constructs UserService over user and message storage.
func NewUserService(users repository.UserRepository, messages repository.MessageRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users, messages: messages}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]model.UserSummary, error) {
	return s.users.List(ctx)
}

func (s *UserServiceImpl) Get(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("empty username: %w", errs.ErrValidation)
	}
	return s.users.GetByUsername(ctx, username)
}

func (s *UserServiceImpl) MessagesFrom(ctx context.Context, username string) ([]model.MessageView, error) {
	if username == "" {
		return nil, fmt.Errorf("empty username: %w", errs.ErrValidation)
	}
	return s.messages.ListFrom(ctx, username)
}

func (s *UserServiceImpl) MessagesTo(ctx context.Context, username string) ([]model.MessageView, error) {
	if username == "" {
		return nil, fmt.Errorf("empty username: %w", errs.ErrValidation)
	}
	return s.messages.ListTo(ctx, username)
}
