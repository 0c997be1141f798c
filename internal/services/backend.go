// Package services contains the application services of the passvault CLI.
// This file defines the backend capability shared by the local store and the
// remote vault: the facade picks one per operation and never does crypto or
// storage work itself.
package services

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault"
)

// CredentialBackend abstracts where credentials live. Two implementations
// exist: LocalBackend over the file store and RemoteBackend over the online
// vault. Which one handles an operation is decided by login state alone.
type CredentialBackend interface {
	// Save encrypts cred under passphrase and stores it.
	Save(ctx context.Context, passphrase []byte, cred vault.Credential) error

	// SaveMany stores a batch; returns how many records were stored.
	SaveMany(ctx context.Context, passphrase []byte, creds []vault.Credential) (int, error)

	// Search returns matching credentials in storage order. With a nil
	// passphrase the passwords are withheld.
	Search(ctx context.Context, passphrase []byte, pattern string) ([]vault.Credential, error)

	// Delete removes the match at the given position among the records
	// matching pattern; a negative position removes every match.
	Delete(ctx context.Context, pattern string, position int) error

	// RotatePassphrase re-encrypts every stored record from old to new,
	// all-or-nothing, and returns the record count.
	RotatePassphrase(ctx context.Context, old, new []byte) (int, error)
}
