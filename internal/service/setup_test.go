package service

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mylists/mylists-server/internal/auth"
	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store/sqlite"
)

// Cheap argon2 parameters keep the auth tests fast.
var testArgon2Params = auth.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type testServices struct {
	store    *sqlite.Store
	tokens   *auth.TokenService
	sessions *SessionService
	auth     *AuthService
	stats    *StatsService
	users    *UserService
	lists    *ListService
	labels   *LabelService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sessions := NewSessionService(s, tokens, logger)
	authService := NewAuthService(s, tokens, sessions, logger)
	authService.hashPassword = func(pw string) (string, error) {
		return auth.HashPasswordWith(testArgon2Params, pw)
	}
	stats := NewStatsService(s, logger)

	return &testServices{
		store:    s,
		tokens:   tokens,
		sessions: sessions,
		auth:     authService,
		stats:    stats,
		users:    NewUserService(s, stats, logger),
		lists:    NewListService(s, logger),
		labels:   NewLabelService(s, logger),
	}
}

func (ts *testServices) createUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Role: role}
	u.ID = "usr-" + username
	u.InitTimestamps()
	u.LastSeen = u.CreatedAt
	require.NoError(t, ts.store.CreateUser(context.Background(), u))
	return u
}

func (ts *testServices) createMedia(t *testing.T, m *domain.Media) *domain.Media {
	t.Helper()
	require.NoError(t, ts.store.CreateMedia(context.Background(), m))
	return m
}

func ptr[T any](v T) *T {
	return &v
}
