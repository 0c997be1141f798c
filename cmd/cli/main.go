package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/passvault/internal/cli"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/filex"
	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/remote"
	"github.com/dmitrijs2005/passvault/internal/services"
	"github.com/dmitrijs2005/passvault/internal/token"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	vaultDir := cfg.VaultDir
	if vaultDir == "" {
		var err error
		vaultDir, err = filex.DefaultVaultDir()
		if err != nil {
			log.Fatalf("resolving vault directory: %v", err)
		}
	} else if err := filex.EnsureDir(vaultDir); err != nil {
		log.Fatalf("preparing vault directory: %v", err)
	}

	store := vault.NewStore(vaultDir)
	guard := vault.NewGuard(vaultDir)
	tokenStore := token.NewStore(vaultDir)

	gqlClient := remote.NewClient(cfg.RemoteEndpointURL, cfg.HTTPTimeout)
	authClient := remote.NewAuthClient(cfg.AuthTokenURL, cfg.HTTPTimeout)

	app := cli.NewApp(logger)

	tokens := services.NewTokenService(tokenStore, authClient, app.PromptCredentials, logger)
	local := services.NewLocalBackend(store)
	remoteBackend := services.NewRemoteBackend(gqlClient, tokens)

	app.SetVault(services.NewVaultService(local, remoteBackend, tokens, guard, store, logger))

	// strip the config-layer flags so commands see only their own arguments
	args := flagx.ExcludeArgs(os.Args[1:], []string{"-c", "-config", "-d", "-e", "-a", "-t"})

	if err := app.Run(ctx, args); err != nil {
		log.Fatalf("%v", err)
	}
}
