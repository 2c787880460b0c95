// Package session owns the current user identity and bearer token. All reads
// and writes of the session go through the Manager; no other code path may
// alter the token or user record.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"foodtrack/internal/api"
)

// Session is one consistent snapshot of the authentication state. Token and
// User always change together: a snapshot never pairs a token with a stale
// user or vice versa.
type Session struct {
	Token   string
	User    *api.User
	Loading bool
}

// Authenticated reports whether the snapshot holds a validated identity.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Manager is the single writer of the session. It implements api.TokenSource
// so the client reads the current token at call time.
type Manager struct {
	store  TokenStore
	logger *slog.Logger

	mu      sync.Mutex
	current Session
	client  *api.Client
	subs    map[int]func(Session)
	nextSub int
}

// NewManager creates a manager with an empty, loading session. Bind must be
// called with the API client before any operation.
func NewManager(store TokenStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		store:   store,
		logger:  logger,
		current: Session{Loading: true},
		subs:    make(map[int]func(Session)),
	}
}

// Bind attaches the API client. Split from NewManager because the client
// itself is constructed with the manager as its token source.
func (m *Manager) Bind(client *api.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Token
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers fn to run on every session transition and returns a
// cancel function. fn receives a consistent snapshot, never a half-applied
// update.
func (m *Manager) Subscribe(fn func(Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// publish replaces the session and notifies subscribers. Callers must not
// hold mu.
func (m *Manager) publish(s Session) {
	m.mu.Lock()
	m.current = s
	fns := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Init loads a persisted token, if any, and validates it once against the
// identity endpoint. Failures log out silently. Loading is false exactly once
// Init returns, whatever the outcome.
func (m *Manager) Init(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn("token load failed", "err", err)
		m.publish(Session{})
		return
	}
	if token == "" {
		m.publish(Session{})
		return
	}

	// Make the token visible for the validation request itself.
	m.publish(Session{Token: token, Loading: true})

	user, err := m.client.Auth.Me(ctx)
	if err != nil {
		m.logger.Debug("stored token rejected", "err", err)
		m.Logout()
		return
	}
	m.publish(Session{Token: token, User: user})
}

// Login exchanges credentials for a token, persists it, fetches the identity
// once and publishes token and user together. On failure the session is left
// untouched and the backend's message comes back as the error.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, err := m.client.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := m.store.Save(token.AccessToken); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	// The identity fetch needs the new token before it is published; publish
	// the pair only once the user is known so no reader sees one without the
	// other.
	m.publish(Session{Token: token.AccessToken, Loading: true})

	user, err := m.client.Auth.Me(ctx)
	if err != nil {
		m.Logout()
		return fmt.Errorf("login succeeded but identity fetch failed: %w", err)
	}

	m.publish(Session{Token: token.AccessToken, User: user})
	return nil
}

// Register creates an account without logging in.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	return m.client.Auth.Register(ctx, req)
}

// Logout clears the token from persistent storage and memory and publishes
// the cleared session. It never fails; store errors are logged.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("token clear failed", "err", err)
	}
	m.publish(Session{})
}

// ProfileUpdate carries the fields a caller wants to change. Nil pointers
// mean "keep the current value". Username is intentionally absent: it is
// immutable post-registration.
type ProfileUpdate struct {
	Email            *string
	Password         *string
	FullName         *string
	Age              *int
	Weight           *float64
	Height           *float64
	ActivityLevel    *string
	DailyCalorieGoal *int
}

// UpdateProfile merges the update over the last known user and PUTs the
// merged record. The published user is replaced with the server's response,
// which is the source of truth after an update, not the client's merged
// guess.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*api.User, error) {
	snap := m.Snapshot()
	if !snap.Authenticated() {
		return nil, fmt.Errorf("not logged in")
	}

	body := mergeUpdate(*snap.User, update)

	user, err := m.client.Auth.UpdateMe(ctx, body)
	if err != nil {
		return nil, err
	}

	m.publish(Session{Token: snap.Token, User: user})
	return user, nil
}

// mergeUpdate fills a full update body from the known user, overriding only
// the fields the caller supplied. Username always carries the current value;
// an unset password stays empty, which the backend reads as "no change".
func mergeUpdate(current api.User, update ProfileUpdate) api.UserUpdate {
	body := api.UserUpdate{
		Username:      current.Username,
		Email:         current.Email,
		FullName:      current.FullName,
		Age:           current.Age,
		Weight:        current.Weight,
		Height:        current.Height,
		ActivityLevel: current.ActivityLevel,
	}
	if current.DailyCalorieGoal != 0 {
		goal := current.DailyCalorieGoal
		body.DailyCalorieGoal = &goal
	}

	if update.Email != nil {
		body.Email = *update.Email
	}
	if update.Password != nil {
		body.Password = *update.Password
	}
	if update.FullName != nil {
		body.FullName = update.FullName
	}
	if update.Age != nil {
		body.Age = update.Age
	}
	if update.Weight != nil {
		body.Weight = update.Weight
	}
	if update.Height != nil {
		body.Height = update.Height
	}
	if update.ActivityLevel != nil {
		body.ActivityLevel = *update.ActivityLevel
	}
	if update.DailyCalorieGoal != nil {
		body.DailyCalorieGoal = update.DailyCalorieGoal
	}
	return body
}

// ChangePassword changes the password of the authenticated user.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	_, err := m.client.Auth.ChangePassword(ctx, current, next)
	return err
}

// RefreshToken requests a new token and persists it. On any failure the
// session is logged out as a safety fallback.
func (m *Manager) RefreshToken(ctx context.Context) error {
	snap := m.Snapshot()
	if !snap.Authenticated() {
		return fmt.Errorf("not logged in")
	}

	token, err := m.client.Auth.RefreshToken(ctx)
	if err != nil {
		m.Logout()
		return err
	}
	if err := m.store.Save(token.AccessToken); err != nil {
		m.Logout()
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	m.publish(Session{Token: token.AccessToken, User: snap.User})
	return nil
}

// DeleteAccount deactivates the account and logs out.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	if _, err := m.client.Auth.DeleteAccount(ctx); err != nil {
		return err
	}
	m.Logout()
	return nil
}

// HandleAuthFailure is the api.Client auth-failure hook: the token is purged
// from storage and memory and the cleared session is published, regardless of
// which operation triggered the 401.
func (m *Manager) HandleAuthFailure() {
	m.Logout()
}
