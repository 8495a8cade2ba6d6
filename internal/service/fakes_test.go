package service

import (
	"context"
	"time"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
	"github.com/messagely/server/internal/repository"
)

type fakeUsers struct {
	byName map[string]*model.User

	createErr error
	getErr    error
	touchErr  error

	touchCalls int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Username]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	cpy.JoinAt = time.Now()
	cpy.LastLoginAt = cpy.JoinAt
	f.byName[u.Username] = &cpy
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, username string) error {
	f.touchCalls++
	if f.touchErr != nil {
		return f.touchErr
	}
	u, ok := f.byName[username]
	if !ok {
		return errs.ErrNotFound
	}
	u.LastLoginAt = time.Now()
	return nil
}

func (f *fakeUsers) List(_ context.Context) ([]model.UserSummary, error) {
	out := make([]model.UserSummary, 0, len(f.byName))
	for _, u := range f.byName {
		out = append(out, model.UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
		})
	}
	return out, nil
}

type fakeMessages struct {
	byID   map[int64]*model.MessageView
	nextID int64

	createErr error
}

var _ repository.MessageRepository = (*fakeMessages)(nil)

func (f *fakeMessages) Create(_ context.Context, from, to, body string) (*model.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.byID == nil {
		f.byID = map[int64]*model.MessageView{}
	}
	f.nextID++
	m := &model.Message{
		ID:           f.nextID,
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now(),
	}
	f.byID[m.ID] = &model.MessageView{
		ID:     m.ID,
		Body:   body,
		SentAt: m.SentAt,
		From:   &model.UserSummary{Username: from},
		To:     &model.UserSummary{Username: to},
	}
	return m, nil
}

func (f *fakeMessages) GetByID(_ context.Context, id int64) (*model.MessageView, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, id int64) (time.Time, error) {
	v, ok := f.byID[id]
	if !ok {
		return time.Time{}, errs.ErrNotFound
	}
	now := time.Now()
	v.ReadAt = &now
	return now, nil
}

func (f *fakeMessages) ListFrom(_ context.Context, username string) ([]model.MessageView, error) {
	var out []model.MessageView
	for _, v := range f.byID {
		if v.From.Username == username {
			c := *v
			c.From = nil
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeMessages) ListTo(_ context.Context, username string) ([]model.MessageView, error) {
	var out []model.MessageView
	for _, v := range f.byID {
		if v.To.Username == username {
			c := *v
			c.To = nil
			out = append(out, c)
		}
	}
	return out, nil
}
