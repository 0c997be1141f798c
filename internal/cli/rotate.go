package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// rotate changes the master passphrase and re-encrypts every stored
// credential with it.
func (a *App) rotate(ctx context.Context) error {
	old, err := getPassword("Enter current master passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(old)

	next, err := getPassword("Enter new master passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("Confirm new master passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(next, confirm) {
		return common.ErrPassphraseMismatch
	}

	count, err := a.vault.RotatePassphrase(ctx, old, next)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Re-encrypted %d credentials.\n", count)
	return nil
}
