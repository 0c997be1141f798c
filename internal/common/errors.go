// Package common defines shared constants and sentinel errors used across
// passvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotAuthenticated means no access token is stored; the user must
	// log in before remote operations are possible.
	ErrNotAuthenticated = errors.New("not logged in")

	// Passphrase errors.
	ErrIncorrectPassphrase = errors.New("incorrect master passphrase")
	ErrPassphraseMismatch  = errors.New("passphrases did not match")

	// ErrCorrupt means a persisted record or token file could not be parsed.
	ErrCorrupt = errors.New("stored data is corrupt")

	// ErrRemoteVault wraps whatever the remote vault reported.
	ErrRemoteVault = errors.New("remote vault failure")

	// ErrCancelled is returned when the user aborts an interactive selection.
	ErrCancelled = errors.New("cancelled")
)
