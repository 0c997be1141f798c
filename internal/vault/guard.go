package vault

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/slot"
)

const hashFileName = "master.hash"

// Guard owns the persisted master passphrase hash. The vault has exactly
// two states: uninitialized (no hash file) and registered; rotation
// replaces the hash but never leaves the registered state.
type Guard struct {
	hash *slot.Store[string]
}

// NewGuard returns a Guard over the hash slot inside dir.
func NewGuard(dir string) *Guard {
	path := filepath.Join(dir, hashFileName)
	return &Guard{
		hash: slot.New(path,
			func(h string) ([]byte, error) { return []byte(h), nil },
			func(b []byte) (string, error) { return string(b), nil },
		),
	}
}

// Initialized reports whether a master passphrase has been registered.
func (g *Guard) Initialized() bool {
	return g.hash.Exists()
}

// RegisterOrVerify verifies candidate against the stored hash, or, on first
// use, registers it. Registration asks the confirm collaborator for a
// re-entry; on mismatch nothing is persisted and
// common.ErrPassphraseMismatch is returned. An already registered vault
// rejects a non-matching candidate with common.ErrIncorrectPassphrase.
func (g *Guard) RegisterOrVerify(candidate []byte, confirm func() ([]byte, error)) error {
	if g.Initialized() {
		return g.Verify(candidate)
	}

	retyped, err := confirm()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(retyped)

	if string(candidate) != string(retyped) {
		return common.ErrPassphraseMismatch
	}
	return g.save(candidate)
}

// Verify checks candidate against the stored hash.
func (g *Guard) Verify(candidate []byte) error {
	stored, err := g.hash.Load()
	if err != nil {
		if errors.Is(err, slot.ErrEmpty) {
			return fmt.Errorf("%w: vault not initialized", common.ErrIncorrectPassphrase)
		}
		return err
	}
	if !cryptox.VerifyPassphrase(candidate, stored) {
		return common.ErrIncorrectPassphrase
	}
	return nil
}

// Rotate changes the master passphrase. It verifies old, runs the caller's
// re-encryption of every stored record, and persists the new hash only
// after the re-encryption fully succeeded. A failed re-encryption leaves
// both the records and the hash as they were, so rotation is never visible
// as half-done. Returns the number of records re-encrypted.
func (g *Guard) Rotate(old, new []byte, reencrypt func(old, new []byte) (int, error)) (int, error) {
	if err := g.Verify(old); err != nil {
		return 0, err
	}
	count, err := reencrypt(old, new)
	if err != nil {
		return 0, err
	}
	if err := g.save(new); err != nil {
		return count, err
	}
	return count, nil
}

func (g *Guard) save(passphrase []byte) error {
	hash, err := cryptox.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	return g.hash.Store(hash)
}
