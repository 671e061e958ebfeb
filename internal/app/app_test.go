package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/listify/internal/client"
	"github.com/yukikurage/listify/internal/dto"
	"github.com/yukikurage/listify/internal/storage"
	"github.com/yukikurage/listify/internal/tasklist"
)

// fakeAPI issues sequential tokens and remembers which ones it handed out.
type fakeAPI struct {
	issued      map[string]string
	usernames   map[string]string
	next        int
	err         error
	verifyCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{issued: map[string]string{}, usernames: map[string]string{}}
}

func (f *fakeAPI) mint(email string) string {
	f.next++
	token := fmt.Sprintf("token-%d", f.next)
	f.issued[token] = email
	return token
}

func (f *fakeAPI) Register(_ context.Context, req client.RegisterRequest) (*dto.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.usernames[req.Email] = req.Username
	return &dto.AuthResponse{
		User:  dto.UserDTO{Username: req.Username, Email: req.Email},
		Token: f.mint(req.Email),
	}, nil
}

func (f *fakeAPI) Login(_ context.Context, req client.LoginRequest) (*dto.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AuthResponse{
		User:  dto.UserDTO{Email: req.Email},
		Token: f.mint(req.Email),
	}, nil
}

func (f *fakeAPI) Verify(_ context.Context, token string) (*dto.VerifiedUserDTO, error) {
	f.verifyCalls++
	if f.err != nil {
		return nil, f.err
	}
	email, ok := f.issued[token]
	if !ok {
		return nil, nil
	}
	return &dto.VerifiedUserDTO{Email: email}, nil
}

func (f *fakeAPI) Me(_ context.Context, token string) (*dto.UserDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	email, ok := f.issued[token]
	if !ok {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid token"}
	}
	return &dto.UserDTO{Username: f.usernames[email], Email: email}, nil
}

type AppTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *storage.MemoryStore
	api   *fakeAPI
	app   *App
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storage.NewMemoryStore()
	s.api = newFakeAPI()
	s.app = New(s.store, s.api, nil)
	s.Require().NoError(s.app.Load(s.ctx))
}

func (s *AppTestSuite) storedToken() string {
	token, err := s.app.Token(s.ctx)
	s.Require().NoError(err)
	return token
}

func (s *AppTestSuite) TestRegisterStoresToken() {
	resp, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)

	s.Equal(resp.Token, s.storedToken())
}

func (s *AppTestSuite) TestLoginReplacesToken() {
	reg, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)

	login, err := s.app.Login(s.ctx, "a@x.com", "pw")
	s.Require().NoError(err)

	s.NotEqual(reg.Token, login.Token)
	s.Equal(login.Token, s.storedToken())
}

func (s *AppTestSuite) TestFailedLoginKeepsToken() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)
	before := s.storedToken()

	s.api.err = &client.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	_, err = s.app.Login(s.ctx, "a@x.com", "nope")

	s.Equal(http.StatusUnauthorized, client.StatusOf(err))
	s.Equal(before, s.storedToken())
}

func (s *AppTestSuite) TestVerify() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)

	user, err := s.app.Verify(s.ctx)
	s.Require().NoError(err)
	s.Equal("a@x.com", user.Email)
}

func (s *AppTestSuite) TestVerify_NoTokenSkipsServer() {
	_, err := s.app.Verify(s.ctx)

	s.ErrorIs(err, ErrNotLoggedIn)
	s.Zero(s.api.verifyCalls)
}

func (s *AppTestSuite) TestVerify_RejectedTokenIsDropped() {
	s.Require().NoError(s.store.Save(s.ctx, KeyToken, "bogus"))

	_, err := s.app.Verify(s.ctx)

	s.ErrorIs(err, ErrNotLoggedIn)
	s.Empty(s.storedToken())
}

func (s *AppTestSuite) TestVerify_NetworkErrorKeepsToken() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)
	token := s.storedToken()

	s.api.err = client.ErrNetwork
	_, err = s.app.Verify(s.ctx)

	s.ErrorIs(err, client.ErrNetwork)
	s.Equal(1, s.api.verifyCalls)
	s.Equal(token, s.storedToken())
}

func (s *AppTestSuite) TestProfile() {
	_, err := s.app.Register(s.ctx, "alice", "a@x.com", "pw")
	s.Require().NoError(err)

	user, err := s.app.Profile(s.ctx)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal("a@x.com", user.Email)
}

func (s *AppTestSuite) TestProfile_NoToken() {
	_, err := s.app.Profile(s.ctx)
	s.ErrorIs(err, ErrNotLoggedIn)
}

func (s *AppTestSuite) TestProfile_RejectedTokenIsDropped() {
	s.Require().NoError(s.store.Save(s.ctx, KeyToken, "bogus"))

	_, err := s.app.Profile(s.ctx)

	s.ErrorIs(err, ErrNotLoggedIn)
	s.Empty(s.storedToken())
}

func (s *AppTestSuite) TestProfile_ServerErrorKeepsToken() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)
	token := s.storedToken()

	s.api.err = &client.APIError{Status: http.StatusInternalServerError, Message: "boom"}
	_, err = s.app.Profile(s.ctx)

	s.Equal(http.StatusInternalServerError, client.StatusOf(err))
	s.Equal(token, s.storedToken())
}

func (s *AppTestSuite) TestLogout() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)

	s.Require().NoError(s.app.Logout(s.ctx))

	s.Empty(s.storedToken())
}

func (s *AppTestSuite) TestTasksSurviveLogout() {
	_, err := s.app.Register(s.ctx, "a", "a@x.com", "pw")
	s.Require().NoError(err)
	_, _, err = s.app.Tasks.Add(s.ctx, "keep me")
	s.Require().NoError(err)

	s.Require().NoError(s.app.Logout(s.ctx))

	reopened := New(s.store, s.api, nil)
	s.Require().NoError(reopened.Load(s.ctx))
	s.Require().Len(reopened.Tasks.Tasks(), 1)
	s.Equal("keep me", reopened.Tasks.Tasks()[0].Name)
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestStorageKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	a := New(store, newFakeAPI(), nil)

	_, err := a.Register(ctx, "a", "a@x.com", "pw")
	require.NoError(t, err)
	_, _, err = a.Tasks.Add(ctx, "task")
	require.NoError(t, err)
	require.NoError(t, a.Tasks.SetDraft(ctx, "draft"))

	for _, key := range []string{KeyToken, tasklist.KeyTasks, tasklist.KeyDraft} {
		_, ok, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
	assert.Equal(t, "token", KeyToken)
	assert.Equal(t, "tasks", tasklist.KeyTasks)
	assert.Equal(t, "currentTaskToAdd", tasklist.KeyDraft)
}
