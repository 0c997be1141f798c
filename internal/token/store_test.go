package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/stretchr/testify/require"
)

func setupStoreToken(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func expiredToken() AccessToken {
	return AccessToken{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresIn:    time.Minute,
		CreatedAt:    time.Now().UTC().Truncate(time.Second).Add(-time.Hour),
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := setupStoreToken(t)
	require.False(t, s.Exists())

	_, err := s.Load()
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestStore_StoreLoad(t *testing.T) {
	s := setupStoreToken(t)

	tok := AccessToken{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		ExpiresIn:    time.Hour,
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, s.Store(tok))
	require.True(t, s.Exists())

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, tok, got)
}

func TestGetOrRefresh_ValidTokenPassesThrough(t *testing.T) {
	s := setupStoreToken(t)
	tok := AccessToken{AccessToken: "access-abc", CreatedAt: time.Unix(1700000000, 0).UTC()}
	require.NoError(t, s.Store(tok))

	got, err := s.GetOrRefresh(context.Background(),
		func(ctx context.Context, _ AccessToken) (AccessToken, error) {
			t.Fatal("refresh must not be called for a valid token")
			return AccessToken{}, nil
		},
		func(ctx context.Context) (AccessToken, error) {
			t.Fatal("login must not be called for a valid token")
			return AccessToken{}, nil
		})
	require.NoError(t, err)
	require.Equal(t, tok, got)
}

func TestGetOrRefresh_RefreshSucceeds(t *testing.T) {
	s := setupStoreToken(t)
	require.NoError(t, s.Store(expiredToken()))

	refreshed := AccessToken{AccessToken: "new-access", RefreshToken: "new-refresh", CreatedAt: time.Unix(1800000000, 0).UTC()}

	got, err := s.GetOrRefresh(context.Background(),
		func(ctx context.Context, old AccessToken) (AccessToken, error) {
			require.Equal(t, "old-refresh", old.RefreshToken)
			return refreshed, nil
		},
		func(ctx context.Context) (AccessToken, error) {
			t.Fatal("login must not be called when refresh succeeds")
			return AccessToken{}, nil
		})
	require.NoError(t, err)
	require.Equal(t, refreshed, got)

	// the refreshed token was persisted
	stored, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, refreshed, stored)
}

func TestGetOrRefresh_FallsBackToLogin(t *testing.T) {
	s := setupStoreToken(t)
	require.NoError(t, s.Store(expiredToken()))

	t2 := AccessToken{AccessToken: "t2-access", CreatedAt: time.Unix(1800000000, 0).UTC()}

	got, err := s.GetOrRefresh(context.Background(),
		func(ctx context.Context, _ AccessToken) (AccessToken, error) {
			return AccessToken{}, errors.New("refresh rejected")
		},
		func(ctx context.Context) (AccessToken, error) {
			return t2, nil
		})
	require.NoError(t, err)
	require.Equal(t, t2, got)

	stored, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, t2, stored)
}

func TestGetOrRefresh_TotalFailureKeepsOldToken(t *testing.T) {
	s := setupStoreToken(t)
	old := expiredToken()
	require.NoError(t, s.Store(old))

	_, err := s.GetOrRefresh(context.Background(),
		func(ctx context.Context, _ AccessToken) (AccessToken, error) {
			return AccessToken{}, errors.New("refresh rejected")
		},
		func(ctx context.Context) (AccessToken, error) {
			return AccessToken{}, errors.New("login failed")
		})
	require.Error(t, err)

	// previous token left intact
	stored, loadErr := s.Load()
	require.NoError(t, loadErr)
	require.Equal(t, old, stored)
}

func TestGetOrRefresh_NotLoggedIn(t *testing.T) {
	s := setupStoreToken(t)

	_, err := s.GetOrRefresh(context.Background(),
		func(ctx context.Context, _ AccessToken) (AccessToken, error) { return AccessToken{}, nil },
		func(ctx context.Context) (AccessToken, error) { return AccessToken{}, nil })
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}
