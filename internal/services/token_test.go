package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/token"
	"github.com/stretchr/testify/require"
)

func setupTokenService(t *testing.T, auth *fakeAuth) (*TokenService, *token.Store) {
	t.Helper()
	store := token.NewStore(t.TempDir())
	prompt := func() (string, string, error) { return "alice@example.com", "hunter2", nil }
	return NewTokenService(store, auth, prompt, testLogger()), store
}

func TestTokenService_LoginFirstTime(t *testing.T) {
	auth := &fakeAuth{loginToken: token.New("access-1", "refresh-1", time.Hour)}
	svc, store := setupTokenService(t, auth)
	require.False(t, svc.IsLoggedIn())

	first, err := svc.Login(context.Background())
	require.NoError(t, err)
	require.True(t, first)
	require.True(t, svc.IsLoggedIn())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "access-1", stored.AccessToken)

	// second login overwrites the slot and is not "first" anymore
	auth.loginToken = token.New("access-2", "refresh-2", time.Hour)
	first, err = svc.Login(context.Background())
	require.NoError(t, err)
	require.False(t, first)

	stored, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "access-2", stored.AccessToken)
}

func TestTokenService_LoginFailureLeavesSlotEmpty(t *testing.T) {
	auth := &fakeAuth{loginErr: errors.New("bad credentials")}
	svc, store := setupTokenService(t, auth)

	_, err := svc.Login(context.Background())
	require.Error(t, err)
	require.False(t, store.Exists())
}

func TestTokenService_CurrentRefreshesExpired(t *testing.T) {
	auth := &fakeAuth{refreshToken: token.New("refreshed-access", "refreshed-refresh", time.Hour)}
	svc, store := setupTokenService(t, auth)

	expired := token.AccessToken{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresIn:    time.Minute,
		CreatedAt:    time.Now().UTC().Truncate(time.Second).Add(-time.Hour),
	}
	require.NoError(t, store.Store(expired))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "refreshed-access", got.AccessToken)
	require.Equal(t, 1, auth.refreshCalls)
	require.Equal(t, 0, auth.loginCalls)
}

func TestTokenService_CurrentFallsBackToLogin(t *testing.T) {
	auth := &fakeAuth{
		refreshErr: errors.New("refresh rejected"),
		loginToken: token.New("t2-access", "t2-refresh", time.Hour),
	}
	svc, store := setupTokenService(t, auth)

	expired := token.AccessToken{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresIn:    time.Minute,
		CreatedAt:    time.Now().UTC().Truncate(time.Second).Add(-time.Hour),
	}
	require.NoError(t, store.Store(expired))

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "t2-access", got.AccessToken)
	require.Equal(t, 1, auth.refreshCalls)
	require.Equal(t, 1, auth.loginCalls)

	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "t2-access", stored.AccessToken)
}

func TestTokenService_CurrentNotLoggedIn(t *testing.T) {
	svc, _ := setupTokenService(t, &fakeAuth{})
	_, err := svc.Current(context.Background())
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestTokenService_Logout(t *testing.T) {
	auth := &fakeAuth{loginToken: token.New("access-1", "refresh-1", time.Hour)}
	svc, _ := setupTokenService(t, auth)

	_, err := svc.Login(context.Background())
	require.NoError(t, err)
	require.True(t, svc.IsLoggedIn())

	require.NoError(t, svc.Logout())
	require.False(t, svc.IsLoggedIn())

	// logging out twice is harmless
	require.NoError(t, svc.Logout())
}
