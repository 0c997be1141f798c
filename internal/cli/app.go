// Package cli implements the interactive command layer of passvault.
// Each command is a one-shot action: parse its arguments, prompt for
// whatever secrets it needs, call the vault facade and print the result.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/passvault/internal/buildinfo"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// VaultManager is the slice of the vault facade the commands need.
type VaultManager interface {
	VerifyPassphrase(passphrase []byte, confirm func() ([]byte, error)) error
	Save(ctx context.Context, passphrase []byte, cred vault.Credential) error
	Search(ctx context.Context, passphrase []byte, pattern string) ([]vault.Credential, error)
	Delete(ctx context.Context, pattern string, position int) error
	RotatePassphrase(ctx context.Context, old, new []byte) (int, error)
	Import(ctx context.Context, passphrase []byte, r io.Reader) (int, error)
	Export(ctx context.Context, passphrase []byte, w io.Writer) (int, error)
	PushLocal(ctx context.Context) (int, error)
	Login(ctx context.Context) (bool, error)
	Logout() error
	IsLoggedIn() bool
}

type App struct {
	vault  VaultManager
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp constructs the command layer. The vault facade is attached
// afterwards with SetVault: the facade's token service needs the app's
// credential prompt, so the app must exist first.
func NewApp(log logging.Logger) *App {
	return &App{log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (a *App) SetVault(v VaultManager) {
	a.vault = v
}

const usage = `Usage: passvault <command> [arguments]

Commands:
  add [-g]           add a credential (-g generates the password)
  show [pattern]     list credentials matching pattern
  delete [pattern]   delete credentials matching pattern
  rotate             change the master passphrase
  generate [-l n]    print a random password
  import <file>      import credentials from a plaintext CSV file
  export <file>      export credentials to a plaintext CSV file
  login              log in to the remote vault
  logout             log out and return to the local vault
  push               upload all local credentials to the remote vault
  version            print build information
`

// Run dispatches a single command. args is os.Args without the program
// name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "add":
		return a.add(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "rotate":
		return a.rotate(ctx)
	case "generate":
		return a.generate(rest)
	case "import":
		return a.importCSV(ctx, rest)
	case "export":
		return a.exportCSV(ctx, rest)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout()
	case "push":
		return a.push(ctx)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
