package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/model"
	"github.com/messagely/server/internal/service"
	"github.com/messagely/server/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	tokens   *token.Service
	accounts map[string]string // username -> password
}

var _ service.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, p service.RegisterParams) (string, error) {
	if p.Username == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" || p.Phone == "" {
		return "", errs.ErrValidation
	}
	if _, exists := f.accounts[p.Username]; exists {
		return "", errs.ErrAlreadyExists
	}
	f.accounts[p.Username] = p.Password
	return f.tokens.Issue(p.Username)
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, error) {
	pw, ok := f.accounts[username]
	if !ok || pw != password {
		return "", errs.ErrUnauthenticated
	}
	return f.tokens.Issue(username)
}

type fakeUserSvc struct {
	users map[string]*model.User
}

var _ service.UserService = (*fakeUserSvc)(nil)

func (f *fakeUserSvc) List(context.Context) ([]model.UserSummary, error) {
	var out []model.UserSummary
	for _, u := range f.users {
		out = append(out, model.UserSummary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone})
	}
	return out, nil
}

func (f *fakeUserSvc) Get(_ context.Context, username string) (*model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserSvc) MessagesFrom(context.Context, string) ([]model.MessageView, error) {
	return []model.MessageView{}, nil
}

func (f *fakeUserSvc) MessagesTo(context.Context, string) ([]model.MessageView, error) {
	return []model.MessageView{}, nil
}

type fakeMessageSvc struct {
	byID   map[int64]*model.MessageView
	nextID int64
}

var _ service.MessageService = (*fakeMessageSvc)(nil)

func (f *fakeMessageSvc) Send(_ context.Context, from, to, body string) (*model.Message, error) {
	if from == "" || to == "" || body == "" {
		return nil, errs.ErrValidation
	}
	f.nextID++
	m := &model.Message{ID: f.nextID, FromUsername: from, ToUsername: to, Body: body, SentAt: time.Now()}
	f.byID[m.ID] = &model.MessageView{
		ID:     m.ID,
		Body:   body,
		SentAt: m.SentAt,
		From:   &model.UserSummary{Username: from},
		To:     &model.UserSummary{Username: to},
	}
	return m, nil
}

func (f *fakeMessageSvc) Get(_ context.Context, id int64) (*model.MessageView, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeMessageSvc) MarkRead(_ context.Context, id int64) (time.Time, error) {
	v, ok := f.byID[id]
	if !ok {
		return time.Time{}, errs.ErrNotFound
	}
	now := time.Now()
	v.ReadAt = &now
	return now, nil
}

type testEnv struct {
	router   *gin.Engine
	tokens   *token.Service
	auth     *fakeAuth
	users    *fakeUserSvc
	messages *fakeMessageSvc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens := token.New([]byte("test-key"), time.Hour)
	auth := &fakeAuth{tokens: tokens, accounts: map[string]string{}}
	users := &fakeUserSvc{users: map[string]*model.User{}}
	messages := &fakeMessageSvc{byID: map[int64]*model.MessageView{}}
	srv := New(auth, users, messages, tokens, zap.NewNop())
	return &testEnv{router: srv.Router(), tokens: tokens, auth: auth, users: users, messages: messages}
}

// bearerFor issues a valid token for the given username.
func (e *testEnv) bearerFor(t *testing.T, username string) string {
	t.Helper()
	tok, err := e.tokens.Issue(username)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do performs a request against the router. An empty authz means anonymous.
func (e *testEnv) do(t *testing.T, method, path, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) seedUser(username string) {
	e.users.users[username] = &model.User{
		Username:    username,
		FirstName:   "First",
		LastName:    "Last",
		Phone:       "+15550000000",
		JoinAt:      time.Now(),
		LastLoginAt: time.Now(),
	}
}

func (e *testEnv) seedMessage(t *testing.T, from, to, body string) int64 {
	t.Helper()
	m, err := e.messages.Send(context.Background(), from, to, body)
	require.NoError(t, err)
	return m.ID
}
