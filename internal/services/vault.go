package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// VaultService is the facade every command goes through. It routes each
// logical operation to the local store or the remote vault depending on
// login state, and owns nothing else: crypto lives in cryptox, storage in
// vault, transport in remote.
type VaultService struct {
	local  *LocalBackend
	remote *RemoteBackend
	tokens *TokenService
	guard  *vault.Guard
	store  *vault.Store
	log    logging.Logger
}

// NewVaultService wires the facade.
func NewVaultService(local *LocalBackend, remoteBackend *RemoteBackend, tokens *TokenService, guard *vault.Guard, store *vault.Store, log logging.Logger) *VaultService {
	return &VaultService{local: local, remote: remoteBackend, tokens: tokens, guard: guard, store: store, log: log}
}

// backend picks where the operation goes: the remote vault while a session
// is active, the local store otherwise. Selected once per operation.
func (s *VaultService) backend(ctx context.Context) CredentialBackend {
	if s.tokens.IsLoggedIn() {
		s.log.Debug(ctx, "using remote vault")
		return s.remote
	}
	s.log.Debug(ctx, "using local store")
	return s.local
}

// VerifyPassphrase verifies the master passphrase, registering it on first
// use via the confirm collaborator.
func (s *VaultService) VerifyPassphrase(passphrase []byte, confirm func() ([]byte, error)) error {
	return s.guard.RegisterOrVerify(passphrase, confirm)
}

// Save stores one credential.
func (s *VaultService) Save(ctx context.Context, passphrase []byte, cred vault.Credential) error {
	return s.backend(ctx).Save(ctx, passphrase, cred)
}

// Search returns credentials matching pattern; passwords are decrypted only
// when a passphrase is supplied.
func (s *VaultService) Search(ctx context.Context, passphrase []byte, pattern string) ([]vault.Credential, error) {
	return s.backend(ctx).Search(ctx, passphrase, pattern)
}

// Delete removes the position-th match of pattern, or all matches when
// position is negative.
func (s *VaultService) Delete(ctx context.Context, pattern string, position int) error {
	return s.backend(ctx).Delete(ctx, pattern, position)
}

// RotatePassphrase changes the master passphrase: verify old, re-encrypt
// every record on the active backend, and only then persist the new hash.
func (s *VaultService) RotatePassphrase(ctx context.Context, old, new []byte) (int, error) {
	b := s.backend(ctx)
	return s.guard.Rotate(old, new, func(oldPass, newPass []byte) (int, error) {
		return b.RotatePassphrase(ctx, oldPass, newPass)
	})
}

// Import reads plaintext credentials from r and stores them encrypted on
// the active backend. Returns how many records were stored; rows stored
// before a failure remain (partial import is reported, not rolled back).
func (s *VaultService) Import(ctx context.Context, passphrase []byte, r io.Reader) (int, error) {
	creds, err := vault.ReadCredentialsCSV(r)
	if err != nil {
		return 0, err
	}
	if len(creds) == 0 {
		return 0, nil
	}
	return s.backend(ctx).SaveMany(ctx, passphrase, creds)
}

// Export writes every credential of the active backend to w as plaintext
// CSV.
func (s *VaultService) Export(ctx context.Context, passphrase []byte, w io.Writer) (int, error) {
	creds, err := s.backend(ctx).Search(ctx, passphrase, "")
	if err != nil {
		return 0, err
	}
	if err := vault.WriteCredentialsCSV(w, creds); err != nil {
		return 0, err
	}
	return len(creds), nil
}

// PushLocal copies the whole local store to the remote vault without
// decrypting anything. Used after the first login to move an existing
// offline vault online.
func (s *VaultService) PushLocal(ctx context.Context) (int, error) {
	records, err := s.store.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return s.remote.PushEncrypted(ctx, records)
}

// Login authenticates against the remote vault; the returned flag is true
// on the very first login.
func (s *VaultService) Login(ctx context.Context) (bool, error) {
	return s.tokens.Login(ctx)
}

// Logout clears the token slot and switches back to the local store.
func (s *VaultService) Logout() error {
	return s.tokens.Logout()
}

// IsLoggedIn reports whether a remote session is active.
func (s *VaultService) IsLoggedIn() bool {
	return s.tokens.IsLoggedIn()
}
