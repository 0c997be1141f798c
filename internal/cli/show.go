package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// show lists credentials matching the optional pattern. The master
// passphrase is needed to reveal passwords; with an empty passphrase the
// table is printed with the password column withheld.
func (a *App) show(ctx context.Context, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	pass, err := getPassword("Enter master passphrase (leave empty to hide passwords)", a.out)
	if err != nil {
		return err
	}
	if len(pass) == 0 {
		pass = nil
	} else {
		defer common.WipeByteArray(pass)
		confirm := func() ([]byte, error) {
			return getPassword("Confirm master passphrase", a.out)
		}
		if err := a.vault.VerifyPassphrase(pass, confirm); err != nil {
			return err
		}
	}

	creds, err := a.vault.Search(ctx, pass, pattern)
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}

	a.printTable(creds, pass != nil)
	return nil
}

func (a *App) printTable(creds []vault.Credential, withPasswords bool) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSERVICE\tUSERNAME\tPASSWORD")
	for i, c := range creds {
		pw := "*****"
		if withPasswords {
			pw = c.Password
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, c.Service, c.Username, pw)
	}
	w.Flush()
}
