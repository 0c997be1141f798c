package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// importCSV reads plaintext credentials from a CSV file and stores them
// encrypted.
func (a *App) importCSV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	pass, err := a.askPassphrase()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	count, err := a.vault.Import(ctx, pass, f)
	if err != nil {
		return fmt.Errorf("imported %d credentials: %w", count, err)
	}

	fmt.Fprintf(a.out, "Imported %d credentials.\n", count)
	return nil
}

// exportCSV writes every credential to a plaintext CSV file. The master
// passphrase is required because the export contains decrypted passwords.
func (a *App) exportCSV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: export <file>")
	}

	pass, err := a.askPassphrase()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	count, err := a.vault.Export(ctx, pass, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d credentials.\n", count)
	return nil
}
