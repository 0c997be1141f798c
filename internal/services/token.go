package services

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/remote"
	"github.com/dmitrijs2005/passvault/internal/token"
)

// CredentialsPrompt asks the user for remote-vault login credentials. It is
// injected by the CLI layer so the token service can fall back to a full
// re-authentication without knowing anything about terminals.
type CredentialsPrompt func() (username, password string, err error)

// TokenService owns the persisted token slot and the refresh-else-login
// fallback chain.
type TokenService struct {
	store  *token.Store
	auth   remote.Authenticator
	prompt CredentialsPrompt
	log    logging.Logger
}

// NewTokenService constructs a TokenService.
func NewTokenService(store *token.Store, auth remote.Authenticator, prompt CredentialsPrompt, log logging.Logger) *TokenService {
	return &TokenService{store: store, auth: auth, prompt: prompt, log: log}
}

// IsLoggedIn reports whether a token slot exists, which is what routes
// operations to the remote backend.
func (s *TokenService) IsLoggedIn() bool {
	return s.store.Exists()
}

// Current returns a usable access token, refreshing or re-authenticating as
// needed. The refreshed or re-obtained token is persisted before returning.
func (s *TokenService) Current(ctx context.Context) (token.AccessToken, error) {
	return s.store.GetOrRefresh(ctx,
		func(ctx context.Context, expired token.AccessToken) (token.AccessToken, error) {
			fresh, err := s.auth.Refresh(ctx, expired)
			if err != nil {
				s.log.Warn(ctx, "token refresh rejected, falling back to login", "error", err.Error())
			}
			return fresh, err
		},
		s.login,
	)
}

// Login prompts for credentials, obtains a brand-new token and stores it.
// Returns true when this was the first login, i.e. no token slot existed
// before.
func (s *TokenService) Login(ctx context.Context) (bool, error) {
	t, err := s.login(ctx)
	if err != nil {
		return false, err
	}
	firstLogin := !s.store.Exists()
	if err := s.store.Store(t); err != nil {
		return false, err
	}
	return firstLogin, nil
}

// Logout clears the token slot; subsequent operations use the local vault.
func (s *TokenService) Logout() error {
	return s.store.Clear()
}

func (s *TokenService) login(ctx context.Context) (token.AccessToken, error) {
	username, password, err := s.prompt()
	if err != nil {
		return token.AccessToken{}, err
	}
	return s.auth.Login(ctx, username, password)
}
