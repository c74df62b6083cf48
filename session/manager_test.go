package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"betleague/api"
	"betleague/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sessions map[int64]*repository.UserSession
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[int64]*repository.UserSession)}
}

func (s *fakeStore) GetByDiscordID(_ context.Context, discordID int64) (*repository.UserSession, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.sessions[discordID], nil
}

func (s *fakeStore) Upsert(_ context.Context, session *repository.UserSession) error {
	if session.LastScreen == "" {
		session.LastScreen = "home"
	}
	s.sessions[session.DiscordID] = session
	return nil
}

func (s *fakeStore) SetLastScreen(_ context.Context, discordID int64, screen string) error {
	stored, ok := s.sessions[discordID]
	if !ok {
		return errors.New("no session")
	}
	stored.LastScreen = screen
	return nil
}

func (s *fakeStore) Delete(_ context.Context, discordID int64) error {
	delete(s.sessions, discordID)
	return nil
}

type fakePlatform struct {
	loginRes    *api.LoginResponse
	loginErr    error
	userRes     *api.User
	userErr     error
	registerErr error
	logoutErr   error

	loginCalls    int
	registerCalls int
}

func (p *fakePlatform) Login(_ context.Context, _, _ string) (*api.LoginResponse, error) {
	p.loginCalls++
	return p.loginRes, p.loginErr
}

func (p *fakePlatform) Register(_ context.Context, _, _, _ string) (*api.RegisterResponse, error) {
	p.registerCalls++
	if p.registerErr != nil {
		return nil, p.registerErr
	}
	return &api.RegisterResponse{AccessToken: "reg-tok"}, nil
}

func (p *fakePlatform) UserByID(_ context.Context, _ int64) (*api.User, error) {
	return p.userRes, p.userErr
}

func (p *fakePlatform) Logout(_ context.Context) error {
	return p.logoutErr
}

func TestCurrentWithoutStoredSession(t *testing.T) {
	manager := NewManager(newFakeStore(), &fakePlatform{})

	state, session, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, state)
	assert.Nil(t, session)
}

func TestRestoreValidStoredSession(t *testing.T) {
	store := newFakeStore()
	store.sessions[100] = &repository.UserSession{
		DiscordID:   100,
		UserID:      7,
		Username:    "stale-name",
		AccessToken: "tok-1",
		LastScreen:  "leagues",
	}
	platform := &fakePlatform{
		userRes: &api.User{ID: 7, Username: "alice", Points: 250},
	}
	manager := NewManager(store, platform)

	state, session, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	require.NotNil(t, session)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice", session.Username, "username refreshed from backend")
	assert.Equal(t, int64(250), session.Points)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "leagues", session.LastScreen)
}

func TestRestoreRejectedSessionIsCleared(t *testing.T) {
	store := newFakeStore()
	store.sessions[100] = &repository.UserSession{DiscordID: 100, UserID: 7, AccessToken: "tok"}
	platform := &fakePlatform{
		userErr: &api.Error{StatusCode: http.StatusNotFound, Detail: "User not found"},
	}
	manager := NewManager(store, platform)

	state, session, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, state)
	assert.Nil(t, session)
	assert.Nil(t, store.sessions[100], "rejected session deleted from store")
}

func TestRestoreUnreachableBackendKeepsStoredSession(t *testing.T) {
	store := newFakeStore()
	store.sessions[100] = &repository.UserSession{DiscordID: 100, UserID: 7, AccessToken: "tok"}
	platform := &fakePlatform{userErr: errors.New("connection refused")}
	manager := NewManager(store, platform)

	state, _, err := manager.Current(context.Background(), 100)
	assert.Error(t, err)
	assert.Equal(t, StateUnauthenticated, state)
	assert.NotNil(t, store.sessions[100], "stored session kept for retry")

	// Backend recovers; the next call restores successfully
	platform.userErr = nil
	platform.userRes = &api.User{ID: 7, Username: "alice"}
	state, session, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	require.NotNil(t, session)
}

func TestLoginPersistsSession(t *testing.T) {
	store := newFakeStore()
	platform := &fakePlatform{
		loginRes: &api.LoginResponse{
			AccessToken: "tok-new",
			User:        api.User{ID: 7, Username: "alice", Points: 140},
		},
	}
	manager := NewManager(store, platform)

	session, err := manager.Login(context.Background(), 100, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", session.Token)
	assert.Equal(t, int64(140), session.Points)

	stored := store.sessions[100]
	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.UserID)
	assert.Equal(t, "tok-new", stored.AccessToken)

	// The cache now answers without revalidating
	state, cached, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	assert.Same(t, session, cached)
}

func TestLoginFailureLeavesUserUnauthenticated(t *testing.T) {
	store := newFakeStore()
	platform := &fakePlatform{
		loginErr: &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Incorrect username or password"},
	}
	manager := NewManager(store, platform)

	_, err := manager.Login(context.Background(), 100, "alice", "wrong")
	require.Error(t, err)
	assert.Nil(t, store.sessions[100])
}

func TestRegisterLogsInWithSameCredentials(t *testing.T) {
	store := newFakeStore()
	platform := &fakePlatform{
		loginRes: &api.LoginResponse{
			AccessToken: "tok",
			User:        api.User{ID: 12, Username: "bob"},
		},
	}
	manager := NewManager(store, platform)

	session, err := manager.Register(context.Background(), 100, "bob", "b@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(12), session.UserID)
	assert.Equal(t, 1, platform.registerCalls)
	assert.Equal(t, 1, platform.loginCalls)
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	store := newFakeStore()
	store.sessions[100] = &repository.UserSession{DiscordID: 100, UserID: 7, AccessToken: "tok"}
	platform := &fakePlatform{
		userRes:   &api.User{ID: 7, Username: "alice"},
		logoutErr: errors.New("backend down"),
	}
	manager := NewManager(store, platform)

	_, _, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)

	require.NoError(t, manager.Logout(context.Background(), 100))
	assert.Nil(t, store.sessions[100])

	state, _, err := manager.Current(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, state)
}

func TestRememberScreenUpdatesCacheAndStore(t *testing.T) {
	store := newFakeStore()
	platform := &fakePlatform{
		loginRes: &api.LoginResponse{AccessToken: "tok", User: api.User{ID: 7, Username: "alice"}},
	}
	manager := NewManager(store, platform)

	session, err := manager.Login(context.Background(), 100, "alice", "pw")
	require.NoError(t, err)

	manager.RememberScreen(context.Background(), 100, "side-bets")
	assert.Equal(t, "side-bets", session.LastScreen)
	assert.Equal(t, "side-bets", store.sessions[100].LastScreen)
}
