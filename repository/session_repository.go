package repository

import (
	"context"
	"fmt"
	"time"

	"betleague/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable is the subset of pgx used by repositories, satisfied by both a
// pool and a transaction
type Queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserSession is a Discord user's stored login against the league platform.
// LastScreen remembers where the user was so the next /home style command
// can offer to resume there.
type UserSession struct {
	DiscordID   int64
	UserID      int64
	Username    string
	AccessToken string
	LastScreen  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionRepository persists platform sessions keyed by Discord user ID
type SessionRepository struct {
	q Queryable
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{q: db.Pool}
}

// GetByDiscordID retrieves the stored session for a Discord user, or nil when
// the user has never logged in
func (r *SessionRepository) GetByDiscordID(ctx context.Context, discordID int64) (*UserSession, error) {
	query := `
		SELECT discord_id, user_id, username, access_token, last_screen, created_at, updated_at
		FROM user_sessions
		WHERE discord_id = $1
	`

	var session UserSession
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&session.DiscordID,
		&session.UserID,
		&session.Username,
		&session.AccessToken,
		&session.LastScreen,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session for discord ID %d: %w", discordID, err)
	}

	return &session, nil
}

// Upsert stores a fresh login, replacing any previous session for the same
// Discord user
func (r *SessionRepository) Upsert(ctx context.Context, session *UserSession) error {
	query := `
		INSERT INTO user_sessions (discord_id, user_id, username, access_token, last_screen)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (discord_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			access_token = EXCLUDED.access_token,
			last_screen = EXCLUDED.last_screen,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	lastScreen := session.LastScreen
	if lastScreen == "" {
		lastScreen = "home"
	}

	err := r.q.QueryRow(ctx, query,
		session.DiscordID,
		session.UserID,
		session.Username,
		session.AccessToken,
		lastScreen,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert session for discord ID %d: %w", session.DiscordID, err)
	}
	session.LastScreen = lastScreen

	return nil
}

// SetLastScreen records the screen the user last visited
func (r *SessionRepository) SetLastScreen(ctx context.Context, discordID int64, screen string) error {
	query := `
		UPDATE user_sessions
		SET last_screen = $1, updated_at = NOW()
		WHERE discord_id = $2
	`
	result, err := r.q.Exec(ctx, query, screen, discordID)
	if err != nil {
		return fmt.Errorf("failed to set last screen for discord ID %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no session for discord ID %d", discordID)
	}
	return nil
}

// Delete removes the stored session, logging the Discord user out locally
func (r *SessionRepository) Delete(ctx context.Context, discordID int64) error {
	query := `DELETE FROM user_sessions WHERE discord_id = $1`
	if _, err := r.q.Exec(ctx, query, discordID); err != nil {
		return fmt.Errorf("failed to delete session for discord ID %d: %w", discordID, err)
	}
	return nil
}
