// Package vault implements the local credential vault: the on-disk record
// store, the master passphrase guard, and the CSV import/export codec.
package vault

import "github.com/dmitrijs2005/passvault/internal/cryptox"

// Credential is one service/username/password triple. The password is held
// in plaintext only in memory; at rest it is always encrypted. Service is
// the logical identity but is not unique: duplicates are allowed and
// disambiguated by position in the store.
type Credential struct {
	Service  string
	Username string
	Password string
}

// EncryptedCredential is the persisted form of a Credential. Service and
// username stay in clear so the store can be searched without decryption;
// Secret is the opaque blob produced by cryptox.EncryptSecret (salt, nonce
// and AEAD ciphertext of the password).
type EncryptedCredential struct {
	Service  string
	Username string
	Secret   string
}

// Encrypt encrypts the password field under the master passphrase. Service
// and username are carried over unchanged.
func (c Credential) Encrypt(passphrase []byte) (EncryptedCredential, error) {
	secret, err := cryptox.EncryptSecret([]byte(c.Password), passphrase)
	if err != nil {
		return EncryptedCredential{}, err
	}
	return EncryptedCredential{Service: c.Service, Username: c.Username, Secret: secret}, nil
}

// Decrypt recovers the plaintext credential. Returns
// common.ErrIncorrectPassphrase if the passphrase does not authenticate the
// stored secret.
func (e EncryptedCredential) Decrypt(passphrase []byte) (Credential, error) {
	password, err := cryptox.DecryptSecret(e.Secret, passphrase)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Service: e.Service, Username: e.Username, Password: string(password)}, nil
}

// WithoutPassword returns the credential with the password withheld, for
// callers that searched without supplying a passphrase.
func (e EncryptedCredential) WithoutPassword() Credential {
	return Credential{Service: e.Service, Username: e.Username}
}
