package cli

import (
	"github.com/dmitrijs2005/passvault/internal/common"
)

// askPassphrase prompts for the master passphrase and verifies it against
// the stored hash. On the very first use there is no hash yet, so the
// facade asks for a confirmation prompt and registers the passphrase.
//
// Callers own the returned slice and should wipe it when done.
func (a *App) askPassphrase() ([]byte, error) {
	pass, err := getPassword("Enter master passphrase", a.out)
	if err != nil {
		return nil, err
	}

	confirm := func() ([]byte, error) {
		return getPassword("Confirm master passphrase", a.out)
	}

	if err := a.vault.VerifyPassphrase(pass, confirm); err != nil {
		common.WipeByteArray(pass)
		return nil, err
	}
	return pass, nil
}
