package services

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/remote"
	"github.com/dmitrijs2005/passvault/internal/token"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// RemoteBackend serves credentials from the online vault. Every operation
// first obtains a usable access token through the token service, which
// transparently refreshes or re-authenticates. Encryption and decryption
// stay on the client: the remote only ever sees encrypted records.
type RemoteBackend struct {
	vault  remote.Vault
	tokens *TokenService
}

// NewRemoteBackend constructs a RemoteBackend over the remote vault and the
// token service.
func NewRemoteBackend(v remote.Vault, tokens *TokenService) *RemoteBackend {
	return &RemoteBackend{vault: v, tokens: tokens}
}

func (b *RemoteBackend) accessToken(ctx context.Context) (token.AccessToken, error) {
	return b.tokens.Current(ctx)
}

func (b *RemoteBackend) Save(ctx context.Context, passphrase []byte, cred vault.Credential) error {
	t, err := b.accessToken(ctx)
	if err != nil {
		return err
	}
	enc, err := cred.Encrypt(passphrase)
	if err != nil {
		return err
	}
	_, err = b.vault.PushOne(ctx, t.AccessToken, enc)
	return err
}

func (b *RemoteBackend) SaveMany(ctx context.Context, passphrase []byte, creds []vault.Credential) (int, error) {
	t, err := b.accessToken(ctx)
	if err != nil {
		return 0, err
	}

	encrypted := make([]vault.EncryptedCredential, 0, len(creds))
	for _, cred := range creds {
		enc, err := cred.Encrypt(passphrase)
		if err != nil {
			return 0, err
		}
		encrypted = append(encrypted, enc)
	}
	return b.vault.PushMany(ctx, t.AccessToken, encrypted)
}

func (b *RemoteBackend) Search(ctx context.Context, passphrase []byte, pattern string) ([]vault.Credential, error) {
	t, err := b.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	records, err := b.vault.Search(ctx, t.AccessToken, pattern)
	if err != nil {
		return nil, err
	}

	matches := make([]vault.Credential, 0, len(records))
	for _, rec := range records {
		if passphrase == nil {
			matches = append(matches, rec.WithoutPassword())
			continue
		}
		cred, err := rec.Decrypt(passphrase)
		if err != nil {
			return nil, err
		}
		matches = append(matches, cred)
	}
	return matches, nil
}

func (b *RemoteBackend) Delete(ctx context.Context, pattern string, position int) error {
	t, err := b.accessToken(ctx)
	if err != nil {
		return err
	}
	return b.vault.Delete(ctx, t.AccessToken, pattern, position)
}

// RotatePassphrase downloads every record, decrypts with old (failing fast
// on the first mismatch, before anything is written anywhere), re-encrypts
// with new and replaces the remote collection in one call.
func (b *RemoteBackend) RotatePassphrase(ctx context.Context, old, new []byte) (int, error) {
	t, err := b.accessToken(ctx)
	if err != nil {
		return 0, err
	}

	records, err := b.vault.Search(ctx, t.AccessToken, "")
	if err != nil {
		return 0, err
	}

	reencrypted := make([]vault.EncryptedCredential, 0, len(records))
	for _, rec := range records {
		cred, err := rec.Decrypt(old)
		if err != nil {
			return 0, err
		}
		enc, err := cred.Encrypt(new)
		if err != nil {
			return 0, err
		}
		reencrypted = append(reencrypted, enc)
	}
	return b.vault.ReplaceAll(ctx, t.AccessToken, reencrypted)
}

// PushEncrypted uploads already-encrypted local records as they are, used
// by the push command to copy the local vault online without decrypting.
func (b *RemoteBackend) PushEncrypted(ctx context.Context, records []vault.EncryptedCredential) (int, error) {
	t, err := b.accessToken(ctx)
	if err != nil {
		return 0, err
	}
	return b.vault.PushMany(ctx, t.AccessToken, records)
}
