package cli

import (
	"context"
	"fmt"
)

// login authenticates against the remote vault. After the very first
// login the local vault usually still holds all the credentials, so the
// user is offered a one-time push.
func (a *App) login(ctx context.Context) error {
	firstLogin, err := a.vault.Login(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in.")

	if !firstLogin {
		return nil
	}

	answer, err := getSimpleText(a.reader, "Push local credentials to the remote vault? (y/n)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" {
		return nil
	}
	return a.push(ctx)
}

func (a *App) logout() error {
	if err := a.vault.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// push uploads every locally stored credential to the remote vault
// without decrypting it.
func (a *App) push(ctx context.Context) error {
	count, err := a.vault.PushLocal(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Pushed %d credentials.\n", count)
	return nil
}

// PromptCredentials asks for remote-vault login credentials. It is handed
// to the token service so an expired session can be re-established from
// any command.
func (a *App) PromptCredentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter remote vault username", a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := getPassword("Enter remote vault password", a.out)
	if err != nil {
		return "", "", err
	}
	return username, string(pw), nil
}
