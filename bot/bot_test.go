package bot

import (
	"context"
	"testing"

	"betleague/api"
	"betleague/repository"
	"betleague/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardStore struct {
	sessions map[int64]*repository.UserSession
}

func (s *guardStore) GetByDiscordID(_ context.Context, discordID int64) (*repository.UserSession, error) {
	return s.sessions[discordID], nil
}

func (s *guardStore) Upsert(_ context.Context, stored *repository.UserSession) error {
	s.sessions[stored.DiscordID] = stored
	return nil
}

func (s *guardStore) SetLastScreen(_ context.Context, _ int64, _ string) error {
	return nil
}

func (s *guardStore) Delete(_ context.Context, discordID int64) error {
	delete(s.sessions, discordID)
	return nil
}

type guardPlatform struct{}

func (p *guardPlatform) Login(_ context.Context, username, _ string) (*api.LoginResponse, error) {
	return &api.LoginResponse{
		AccessToken: "tok",
		User:        api.User{ID: 7, Username: username},
	}, nil
}

func (p *guardPlatform) Register(_ context.Context, _, _, _ string) (*api.RegisterResponse, error) {
	return &api.RegisterResponse{AccessToken: "tok"}, nil
}

func (p *guardPlatform) UserByID(_ context.Context, userID int64) (*api.User, error) {
	return &api.User{ID: userID, Username: "alice"}, nil
}

func (p *guardPlatform) Logout(_ context.Context) error {
	return nil
}

func TestSessionGuardRejectsWithoutLogin(t *testing.T) {
	store := &guardStore{sessions: make(map[int64]*repository.UserSession)}
	b := &Bot{sessions: session.NewManager(store, &guardPlatform{})}

	allowed, err := b.sessionAllowed(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, allowed, "protected routes stay closed without a session")
}

func TestSessionGuardFollowsLoginAndLogout(t *testing.T) {
	store := &guardStore{sessions: make(map[int64]*repository.UserSession)}
	manager := session.NewManager(store, &guardPlatform{})
	b := &Bot{sessions: manager}

	_, err := manager.Login(context.Background(), 100, "alice", "pw")
	require.NoError(t, err)

	allowed, err := b.sessionAllowed(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, allowed)

	// A logout elsewhere closes the guard on the next interaction
	require.NoError(t, manager.Logout(context.Background(), 100))
	allowed, err = b.sessionAllowed(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, allowed)
}
