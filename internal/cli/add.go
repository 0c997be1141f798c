package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/password"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// add prompts for a credential and stores it. With -g the password is
// generated instead of prompted for.
func (a *App) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.out)
	generate := fs.Bool("g", false, "generate the password")
	length := fs.Int("l", password.DefaultLength, "length of the generated password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	service, err := getSimpleText(a.reader, "Enter service or URL", a.out)
	if err != nil {
		return err
	}
	if service == "" {
		return fmt.Errorf("service is required")
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	var pw string
	if *generate {
		pw, err = password.Generate(*length)
		if err != nil {
			return err
		}
	} else {
		raw, err := getPassword("Enter password", a.out)
		if err != nil {
			return err
		}
		pw = string(raw)
		common.WipeByteArray(raw)
	}

	pass, err := a.askPassphrase()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	cred := vault.Credential{Service: service, Username: username, Password: pw}
	if err := a.vault.Save(ctx, pass, cred); err != nil {
		return err
	}

	if *generate {
		fmt.Fprintf(a.out, "Generated password: %s\n", pw)
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}
