// Package cryptox implements the cryptographic primitives of passvault:
// bcrypt hashing of the master passphrase and AES-256-GCM encryption of
// credential secrets under an argon2id-derived key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SaltLength is the per-secret argon2 salt length in bytes.
	SaltLength = 16
	// NonceLength is the AES-GCM nonce length in bytes.
	NonceLength = 12
	// KeyLength is the derived AES key length in bytes (AES-256).
	KeyLength = 32
)

// HashPassphrase returns a salted, slow, one-way bcrypt hash of the master
// passphrase, suitable for persisting. The original passphrase cannot be
// recovered from the result.
func HashPassphrase(passphrase []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passphrase, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passphrase: %w", err)
	}
	return string(hash), nil
}

// VerifyPassphrase reports whether passphrase matches the stored bcrypt hash.
// bcrypt's comparison is constant-time over the hash output.
func VerifyPassphrase(passphrase []byte, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), passphrase) == nil
}

// DeriveKey derives a 32-byte AES key from the master passphrase and salt
// using argon2id. The derivation is deterministic: the same passphrase and
// salt always yield the same key, which is what allows previously stored
// secrets to be decrypted later. The salt is persisted alongside each secret.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeyLength)
}

// EncryptSecret encrypts plaintext under a key derived from the master
// passphrase and returns an opaque base64 blob laid out as
// salt(16) || nonce(12) || ciphertext. A fresh random salt and nonce are
// generated on every call, so encrypting the same plaintext twice never
// yields the same blob.
func EncryptSecret(plaintext, passphrase []byte) (string, error) {
	salt := common.GenerateRandByteArray(SaltLength)
	nonce := common.GenerateRandByteArray(NonceLength)

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, SaltLength+NonceLength+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptSecret reverses EncryptSecret. It returns common.ErrCorrupt if the
// blob is not parsable and common.ErrIncorrectPassphrase if the GCM
// authentication tag does not verify, which is what a wrong passphrase
// looks like. A wrong passphrase can never silently produce garbage
// plaintext: the tag check fails first.
func DecryptSecret(encoded string, passphrase []byte) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorrupt, err)
	}
	if len(blob) < SaltLength+NonceLength {
		return nil, fmt.Errorf("%w: secret blob too short", common.ErrCorrupt)
	}

	salt := blob[:SaltLength]
	nonce := blob[SaltLength : SaltLength+NonceLength]
	ciphertext := blob[SaltLength+NonceLength:]

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrIncorrectPassphrase
	}
	return plaintext, nil
}
