// Package service contains application services for authentication, users and messages.
package service

import (
	"context"
	"errors"
	"fmt"

	pkgcrypto "github.com/messagely/server/internal/crypto"
	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
	"github.com/messagely/server/internal/repository"
	"github.com/messagely/server/internal/token"
)

// RegisterParams carries the fields required to create an account.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new account and returns a token for it.
	Register(ctx context.Context, p RegisterParams) (string, error)
	// Login authenticates a username/password pair and returns a token.
	// Unknown user and wrong password both return errs.ErrUnauthenticated.
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
	cost   int
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, bcryptCost int) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, cost: bcryptCost}
}

// Register validates input, hashes the password and creates the account.
func (s *AuthServiceImpl) Register(ctx context.Context, p RegisterParams) (string, error) {
	if p.Username == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" || p.Phone == "" {
		return "", fmt.Errorf("username, password, first_name, last_name and phone are required: %w", errs.ErrValidation)
	}

	hash, err := pkgcrypto.HashPassword(p.Password, s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     p.Username,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return s.tokens.Issue(p.Username)
}

// Login verifies credentials and returns a fresh token. A missing account and
// a failed password check are deliberately indistinguishable; only genuine
// storage failures propagate as themselves.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUnauthenticated
		}
		return "", err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return "", errs.ErrUnauthenticated
	}

	// Best-effort: a failed touch must not turn a correct login into an error.
	_ = s.users.TouchLastLogin(ctx, username)

	return s.tokens.Issue(username)
}
