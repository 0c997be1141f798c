package services

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault"
)

// LocalBackend serves credentials from the file store in the vault
// directory.
type LocalBackend struct {
	store *vault.Store
}

// NewLocalBackend constructs a LocalBackend over the given store.
func NewLocalBackend(store *vault.Store) *LocalBackend {
	return &LocalBackend{store: store}
}

func (b *LocalBackend) Save(_ context.Context, passphrase []byte, cred vault.Credential) error {
	return b.store.Append(passphrase, cred)
}

func (b *LocalBackend) SaveMany(_ context.Context, passphrase []byte, creds []vault.Credential) (int, error) {
	return b.store.Import(creds, passphrase)
}

func (b *LocalBackend) Search(_ context.Context, passphrase []byte, pattern string) ([]vault.Credential, error) {
	return b.store.Search(passphrase, pattern)
}

// Delete resolves pattern matches to store positions and removes them.
// Position is relative to the ordered match list, which is how the user saw
// the records in the search table.
func (b *LocalBackend) Delete(_ context.Context, pattern string, position int) error {
	records, err := b.store.ReadAll()
	if err != nil {
		return err
	}

	matcher, err := vault.NewMatcher(pattern)
	if err != nil {
		return err
	}

	var matchPositions []int
	for i, rec := range records {
		if matcher.Match(rec) {
			matchPositions = append(matchPositions, i)
		}
	}

	if position >= 0 {
		if position >= len(matchPositions) {
			return nil
		}
		matchPositions = matchPositions[position : position+1]
	}
	if len(matchPositions) == 0 {
		return nil
	}
	return b.store.Delete(matchPositions)
}

func (b *LocalBackend) RotatePassphrase(_ context.Context, old, new []byte) (int, error) {
	return b.store.RewriteWithNewPassphrase(old, new)
}
