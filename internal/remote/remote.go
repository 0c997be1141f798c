// Package remote talks to the online vault. The vault API is GraphQL over
// HTTP with bearer-token authentication; login and token refresh go through
// a separate OAuth-style token endpoint.
//
// Records cross the wire only in encrypted form. Decryption happens on the
// client, so the master passphrase never leaves the process.
package remote

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/token"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// Vault defines the remote credential operations.
//
// All methods honor context cancellation and return errors wrapping
// common.ErrRemoteVault for server-reported failures and
// common.ErrNotAuthenticated for rejected tokens.
type Vault interface {
	// Search returns the encrypted records whose service or username
	// matches pattern, in vault order.
	Search(ctx context.Context, accessToken, pattern string) ([]vault.EncryptedCredential, error)

	// PushOne uploads a single encrypted record. Returns the number of
	// records stored.
	PushOne(ctx context.Context, accessToken string, rec vault.EncryptedCredential) (int, error)

	// PushMany uploads a batch of encrypted records. Returns the number of
	// records stored.
	PushMany(ctx context.Context, accessToken string, recs []vault.EncryptedCredential) (int, error)

	// Delete removes matching records. A position >= 0 deletes only the
	// match at that position; a negative position deletes every match.
	Delete(ctx context.Context, accessToken, pattern string, position int) error

	// ReplaceAll atomically replaces the whole remote collection, used for
	// passphrase rotation where every record is re-encrypted client-side.
	ReplaceAll(ctx context.Context, accessToken string, recs []vault.EncryptedCredential) (int, error)
}

// Authenticator obtains and renews access tokens.
type Authenticator interface {
	// Login trades user credentials for a brand-new token.
	Login(ctx context.Context, username, password string) (token.AccessToken, error)

	// Refresh exchanges an expired token's refresh token for a fresh pair.
	Refresh(ctx context.Context, expired token.AccessToken) (token.AccessToken, error)
}
