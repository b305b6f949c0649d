package httpapi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kolejki-fizjo/internal/repository"
	"kolejki-fizjo/internal/store"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func newTestRepo() *repository.StateRepo {
	return repository.NewStateRepo(newFakeKV(), zap.NewNop())
}

func TestAuthStore_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	s, err := NewAuthStore(ctx, repo)
	require.NoError(t, err)
	require.False(t, s.HasUsers())

	require.NoError(t, s.Register(ctx, " gosia ", "sekret1"))
	require.True(t, s.HasUsers())

	token, err := s.Login(ctx, "gosia", "sekret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, ok := s.SessionUser(token)
	require.True(t, ok)
	require.Equal(t, "gosia", user)

	persisted, err := repo.SessionUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "gosia", persisted)
}

func TestAuthStore_LoginCaseInsensitiveUsername(t *testing.T) {
	ctx := context.Background()
	s, err := NewAuthStore(ctx, newTestRepo())
	require.NoError(t, err)
	require.NoError(t, s.Register(ctx, "Gosia", "sekret1"))

	_, err = s.Login(ctx, "GOSIA", "sekret1")
	require.NoError(t, err)
}

func TestAuthStore_BadCredentials(t *testing.T) {
	ctx := context.Background()
	s, err := NewAuthStore(ctx, newTestRepo())
	require.NoError(t, err)
	require.NoError(t, s.Register(ctx, "gosia", "sekret1"))

	_, err = s.Login(ctx, "gosia", "zle-haslo")
	require.ErrorIs(t, err, ErrBadCredentials)
	_, err = s.Login(ctx, "nikt", "sekret1")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthStore_RegistrationIsOneShot(t *testing.T) {
	ctx := context.Background()
	s, err := NewAuthStore(ctx, newTestRepo())
	require.NoError(t, err)
	require.NoError(t, s.Register(ctx, "pierwsza", "sekret1"))

	err = s.Register(ctx, "druga", "sekret2")
	require.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestAuthStore_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	s, err := NewAuthStore(ctx, newTestRepo())
	require.NoError(t, err)

	require.ErrorIs(t, s.Register(ctx, "  ", "sekret1"), ErrUsernameRequired)
	require.ErrorIs(t, s.Register(ctx, "gosia", "12345"), ErrWeakPassword)
}

func TestAuthStore_Logout(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	s, err := NewAuthStore(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, s.Register(ctx, "gosia", "sekret1"))
	token, err := s.Login(ctx, "gosia", "sekret1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, token))
	_, ok := s.SessionUser(token)
	require.False(t, ok)

	persisted, err := repo.SessionUser(ctx)
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestAuthStore_AccountsSurviveReload(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	s, err := NewAuthStore(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, s.Register(ctx, "gosia", "sekret1"))

	reloaded, err := NewAuthStore(ctx, repo)
	require.NoError(t, err)
	require.True(t, reloaded.HasUsers())
	_, err = reloaded.Login(ctx, "gosia", "sekret1")
	require.NoError(t, err)
}
