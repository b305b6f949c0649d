package httpapi

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/repository"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrUserExists         = errors.New("user already exists")
	ErrRegistrationClosed = errors.New("registration is closed; ask an administrator")
	ErrBadCredentials     = errors.New("invalid username or password")
)

// AuthStore keeps the local account list and the active session. This is
// the whole of authentication: a salted sha256 check against locally stored
// accounts. The credential list and the session username persist through
// the state repo; bearer tokens live only in memory.
type AuthStore struct {
	mu     sync.RWMutex
	repo   *repository.StateRepo
	users  []domain.User
	tokens map[string]string // token -> username
}

func NewAuthStore(ctx context.Context, repo *repository.StateRepo) (*AuthStore, error) {
	users, err := repo.Users(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthStore{repo: repo, users: users, tokens: map[string]string{}}, nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func hashPassword(password, salt string) string {
	return sha256Hex(password + ":" + salt)
}

func randomSalt() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// HasUsers reports whether any account exists (the UI shows registration
// only before the first one).
func (s *AuthStore) HasUsers() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) > 0
}

// Register creates the first account. Later accounts are added by hand;
// self-registration stays one-shot.
func (s *AuthStore) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) > 0 {
		return ErrRegistrationClosed
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return ErrUserExists
		}
	}
	salt := randomSalt()
	s.users = append(s.users, domain.User{
		Username:  username,
		Salt:      salt,
		Hash:      hashPassword(password, salt),
		CreatedAt: time.Now().UnixMilli(),
	})
	return s.repo.SaveUsers(ctx, s.users)
}

// Login verifies the salted hash and opens a session.
func (s *AuthStore) Login(ctx context.Context, username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if !strings.EqualFold(u.Username, username) {
			continue
		}
		if hashPassword(password, u.Salt) != u.Hash {
			break
		}
		token := uuid.NewString()
		s.tokens[token] = u.Username
		if err := s.repo.SaveSessionUser(ctx, u.Username); err != nil {
			return "", err
		}
		return token, nil
	}
	return "", ErrBadCredentials
}

// Logout drops the token and clears the persisted session.
func (s *AuthStore) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return s.repo.ClearSessionUser(ctx)
}

// SessionUser resolves a bearer token to a username.
func (s *AuthStore) SessionUser(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.tokens[token]
	return u, ok
}
