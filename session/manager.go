package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"betleague/api"
	"betleague/repository"

	log "github.com/sirupsen/logrus"
)

// State describes where a Discord user stands with the league platform
type State int

const (
	// StateUnauthenticated means no valid stored login exists
	StateUnauthenticated State = iota
	// StateRestoring means a stored login is being validated against the
	// backend; callers treat this as "not signed in yet"
	StateRestoring
	// StateAuthenticated means the stored login was validated this process
	StateAuthenticated
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is a validated login for one Discord user
type Session struct {
	UserID     int64
	Username   string
	Token      string
	Points     int64
	LastScreen string
}

// Store persists sessions across restarts
type Store interface {
	GetByDiscordID(ctx context.Context, discordID int64) (*repository.UserSession, error)
	Upsert(ctx context.Context, session *repository.UserSession) error
	SetLastScreen(ctx context.Context, discordID int64, screen string) error
	Delete(ctx context.Context, discordID int64) error
}

// Platform is the slice of the backend API the manager needs
type Platform interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) (*api.RegisterResponse, error)
	UserByID(ctx context.Context, userID int64) (*api.User, error)
	Logout(ctx context.Context) error
}

type entry struct {
	state   State
	session *Session
}

// Manager owns the login lifecycle. A stored session is validated against
// the backend once per process and cached; a stored session the backend
// rejects is deleted rather than retried, so a broken login never wedges a
// user out of the login command.
type Manager struct {
	store    Store
	platform Platform

	mu    sync.RWMutex
	cache map[int64]*entry
}

// NewManager creates a session manager backed by the given store and API
func NewManager(store Store, platform Platform) *Manager {
	return &Manager{
		store:    store,
		platform: platform,
		cache:    make(map[int64]*entry),
	}
}

// Current returns the user's state and, when authenticated, their session.
// The first call per user restores the stored login from the database and
// validates it against the backend.
func (m *Manager) Current(ctx context.Context, discordID int64) (State, *Session, error) {
	m.mu.RLock()
	cached, ok := m.cache[discordID]
	m.mu.RUnlock()
	if ok && cached.state != StateRestoring {
		return cached.state, cached.session, nil
	}

	return m.restore(ctx, discordID)
}

// restore validates the stored login, if any, and settles the cache entry
func (m *Manager) restore(ctx context.Context, discordID int64) (State, *Session, error) {
	m.mu.Lock()
	if cached, ok := m.cache[discordID]; ok && cached.state != StateRestoring {
		m.mu.Unlock()
		return cached.state, cached.session, nil
	}
	m.cache[discordID] = &entry{state: StateRestoring}
	m.mu.Unlock()

	stored, err := m.store.GetByDiscordID(ctx, discordID)
	if err != nil {
		m.forget(discordID)
		return StateUnauthenticated, nil, fmt.Errorf("load stored session: %w", err)
	}
	if stored == nil {
		m.settle(discordID, StateUnauthenticated, nil)
		return StateUnauthenticated, nil, nil
	}

	user, err := m.platform.UserByID(ctx, stored.UserID)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			// The backend no longer recognizes this login. Clear it so
			// the user lands on a clean login prompt.
			log.WithFields(log.Fields{
				"discordID": discordID,
				"userID":    stored.UserID,
				"status":    apiErr.StatusCode,
			}).Warn("Stored session rejected by backend, clearing it")
			if delErr := m.store.Delete(ctx, discordID); delErr != nil {
				log.WithError(delErr).Error("Failed to delete rejected session")
			}
			m.settle(discordID, StateUnauthenticated, nil)
			return StateUnauthenticated, nil, nil
		}
		// Backend unreachable; leave the stored session alone and retry
		// on the next interaction.
		m.forget(discordID)
		return StateUnauthenticated, nil, fmt.Errorf("validate stored session: %w", err)
	}

	session := &Session{
		UserID:     user.ID,
		Username:   user.Username,
		Token:      stored.AccessToken,
		Points:     user.Points,
		LastScreen: stored.LastScreen,
	}
	m.settle(discordID, StateAuthenticated, session)
	log.WithFields(log.Fields{
		"discordID": discordID,
		"username":  user.Username,
	}).Info("Restored stored session")
	return StateAuthenticated, session, nil
}

// Login authenticates the credentials and persists the resulting session
func (m *Manager) Login(ctx context.Context, discordID int64, username, password string) (*Session, error) {
	res, err := m.platform.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	stored := &repository.UserSession{
		DiscordID:   discordID,
		UserID:      res.User.ID,
		Username:    res.User.Username,
		AccessToken: res.AccessToken,
	}
	if err := m.store.Upsert(ctx, stored); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	session := &Session{
		UserID:     res.User.ID,
		Username:   res.User.Username,
		Token:      res.AccessToken,
		Points:     res.User.Points,
		LastScreen: stored.LastScreen,
	}
	m.settle(discordID, StateAuthenticated, session)
	return session, nil
}

// Register creates an account and immediately logs it in
func (m *Manager) Register(ctx context.Context, discordID int64, username, email, password string) (*Session, error) {
	if _, err := m.platform.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return m.Login(ctx, discordID, username, password)
}

// Logout drops the stored session. The backend call is best effort; the
// local session is cleared regardless.
func (m *Manager) Logout(ctx context.Context, discordID int64) error {
	if err := m.platform.Logout(ctx); err != nil {
		log.WithError(err).WithField("discordID", discordID).Warn("Backend logout failed")
	}
	if err := m.store.Delete(ctx, discordID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.settle(discordID, StateUnauthenticated, nil)
	return nil
}

// RememberScreen records the screen the user last visited so it survives
// restarts
func (m *Manager) RememberScreen(ctx context.Context, discordID int64, screen string) {
	m.mu.Lock()
	if cached, ok := m.cache[discordID]; ok && cached.session != nil {
		cached.session.LastScreen = screen
	}
	m.mu.Unlock()

	if err := m.store.SetLastScreen(ctx, discordID, screen); err != nil {
		log.WithError(err).WithField("discordID", discordID).Warn("Failed to persist last screen")
	}
}

func (m *Manager) settle(discordID int64, state State, session *Session) {
	m.mu.Lock()
	m.cache[discordID] = &entry{state: state, session: session}
	m.mu.Unlock()
}

func (m *Manager) forget(discordID int64) {
	m.mu.Lock()
	delete(m.cache, discordID)
	m.mu.Unlock()
}
