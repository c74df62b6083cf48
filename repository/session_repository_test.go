package repository

import (
	"context"
	"testing"

	"betleague/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewSessionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing session returns nil", func(t *testing.T) {
		session, err := repo.GetByDiscordID(ctx, 111)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("upsert then get round trips", func(t *testing.T) {
		session := &UserSession{
			DiscordID:   222,
			UserID:      7,
			Username:    "alice",
			AccessToken: "tok-1",
		}
		require.NoError(t, repo.Upsert(ctx, session))
		assert.Equal(t, "home", session.LastScreen)
		assert.False(t, session.CreatedAt.IsZero())

		got, err := repo.GetByDiscordID(ctx, 222)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), got.UserID)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "tok-1", got.AccessToken)
	})

	t.Run("upsert replaces a previous login", func(t *testing.T) {
		first := &UserSession{DiscordID: 333, UserID: 7, Username: "alice", AccessToken: "tok-old"}
		require.NoError(t, repo.Upsert(ctx, first))

		second := &UserSession{DiscordID: 333, UserID: 9, Username: "bob", AccessToken: "tok-new"}
		require.NoError(t, repo.Upsert(ctx, second))

		got, err := repo.GetByDiscordID(ctx, 333)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(9), got.UserID)
		assert.Equal(t, "tok-new", got.AccessToken)
	})

	t.Run("set last screen", func(t *testing.T) {
		session := &UserSession{DiscordID: 444, UserID: 7, Username: "alice", AccessToken: "tok"}
		require.NoError(t, repo.Upsert(ctx, session))

		require.NoError(t, repo.SetLastScreen(ctx, 444, "leagues"))

		got, err := repo.GetByDiscordID(ctx, 444)
		require.NoError(t, err)
		assert.Equal(t, "leagues", got.LastScreen)

		err = repo.SetLastScreen(ctx, 999, "leagues")
		assert.Error(t, err)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		session := &UserSession{DiscordID: 555, UserID: 7, Username: "alice", AccessToken: "tok"}
		require.NoError(t, repo.Upsert(ctx, session))

		require.NoError(t, repo.Delete(ctx, 555))

		got, err := repo.GetByDiscordID(ctx, 555)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Deleting an absent session is not an error
		require.NoError(t, repo.Delete(ctx, 555))
	})
}
