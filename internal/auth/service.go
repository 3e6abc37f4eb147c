package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finlog/internal/core"
	"finlog/internal/storage"
)

var (
	// ErrInvalidCredentials is returned for unknown usernames and wrong
	// passwords alike, so login failures do not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken mirrors the storage sentinel at the service boundary.
	ErrUsernameTaken = storage.ErrUsernameTaken
	// ErrEmptyCredentials is returned when username or password is blank.
	ErrEmptyCredentials = errors.New("username and password are required")
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	GetUserByUsername(ctx context.Context, username string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)
	CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetSession(ctx context.Context, token string) (storage.Session, error)
	RenewSession(ctx context.Context, token string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// Service implements registration, credential verification and sessions.
type Service struct {
	store      Store
	sessionTTL time.Duration
}

func NewService(store Store, sessionTTL time.Duration) *Service {
	return &Service{store: store, sessionTTL: sessionTTL}
}

// SessionTTL returns the configured session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates a user with a bcrypt-hashed credential. Duplicate
// usernames fail with ErrUsernameTaken and leave the existing user untouched.
func (s *Service) Register(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return core.User{}, ErrEmptyCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return core.User{}, err
	}

	user, err := s.store.CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return core.User{}, ErrUsernameTaken
		}
		return core.User{}, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair. The password is always
// checked against a hash, even for unknown users, to keep timing comparable.
func (s *Service) Authenticate(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return core.User{}, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			CheckPassword(password, dummyHash)
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return core.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// dummyHash is a bcrypt hash of an unguessable value, compared against when
// the username does not exist.
var dummyHash = func() string {
	h, err := HashPassword("finlog-no-such-user")
	if err != nil {
		panic(err)
	}
	return h
}()

// StartSession issues a new session token for the user.
func (s *Service) StartSession(ctx context.Context, userID int64) (string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.store.CreateSession(ctx, token, userID, time.Now().Add(s.sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession returns the user bound to a valid session token. Sessions
// past the halfway point of their lifetime are renewed, so active users stay
// logged in while idle sessions still expire.
func (s *Service) ResolveSession(ctx context.Context, token string) (core.User, error) {
	sess, err := s.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, fmt.Errorf("resolve session: %w", err)
	}

	if time.Until(sess.ExpiresAt) < s.sessionTTL/2 {
		if err := s.store.RenewSession(ctx, token, time.Now().Add(s.sessionTTL)); err != nil {
			// Renewal failure is not fatal; the session is still valid.
			slog.WarnContext(ctx, "Session renewal failed", "error", err)
		}
	}

	user, err := s.store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return core.User{}, fmt.Errorf("resolve session user: %w", err)
	}
	return user, nil
}

// EndSession invalidates a session token.
func (s *Service) EndSession(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// SweepExpired removes expired sessions. Run periodically from the entrypoint.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx)
}
