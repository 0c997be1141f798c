package token

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/slot"
)

const tokenFileName = "access.token"

// RefreshFunc exchanges an expired token for a fresh one.
type RefreshFunc func(ctx context.Context, expired AccessToken) (AccessToken, error)

// LoginFunc obtains a brand-new token from scratch.
type LoginFunc func(ctx context.Context) (AccessToken, error)

// Store is the single persisted token slot.
type Store struct {
	slot *slot.Store[AccessToken]
}

// NewStore returns a Store over the token slot inside dir.
func NewStore(dir string) *Store {
	return &Store{slot: slot.New(filepath.Join(dir, tokenFileName), encode, decode)}
}

// Exists reports whether a token is stored, i.e. whether a remote session
// is active.
func (s *Store) Exists() bool {
	return s.slot.Exists()
}

// Load returns the stored token. Returns common.ErrNotAuthenticated when no
// token has been stored yet.
func (s *Store) Load() (AccessToken, error) {
	t, err := s.slot.Load()
	if err != nil {
		if errors.Is(err, slot.ErrEmpty) {
			return AccessToken{}, fmt.Errorf("%w: log in first with the login command", common.ErrNotAuthenticated)
		}
		return AccessToken{}, err
	}
	return t, nil
}

// Store overwrites the slot with t. Every update is a full replacement;
// there is no partial token state.
func (s *Store) Store(t AccessToken) error {
	return s.slot.Store(t)
}

// Clear removes the stored token (logout).
func (s *Store) Clear() error {
	return s.slot.Clear()
}

// GetOrRefresh returns a usable token. A valid stored token is returned as
// is. An expired token is first exchanged via refresh; if the refresh is
// rejected the fallback is a full login. Whichever branch produced a new
// token persists it before returning. On total failure the previously
// stored token is left intact, so the slot is never half-updated.
func (s *Store) GetOrRefresh(ctx context.Context, refresh RefreshFunc, login LoginFunc) (AccessToken, error) {
	t, err := s.Load()
	if err != nil {
		return AccessToken{}, err
	}
	if !t.IsExpired() {
		return t, nil
	}

	fresh, err := refresh(ctx, t)
	if err != nil {
		// refresh rejection is never surfaced raw: fall back to a
		// from-scratch login
		fresh, err = login(ctx)
		if err != nil {
			return AccessToken{}, fmt.Errorf("re-authentication failed: %w", err)
		}
	}
	if err := s.Store(fresh); err != nil {
		return AccessToken{}, err
	}
	return fresh, nil
}
