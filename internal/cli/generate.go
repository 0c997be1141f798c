package cli

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/password"
)

func (a *App) generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(a.out)
	length := fs.Int("l", password.DefaultLength, "password length")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := password.Generate(*length)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, pw)
	return nil
}
