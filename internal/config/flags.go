package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   local vault directory
//	-e string   remote vault GraphQL endpoint URL
//	-a string   auth token endpoint URL
//	-t int      HTTP timeout in seconds
//
// os.Args is filtered to just these flags first so the command layer can
// define its own without interference.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.VaultDir, "d", cfg.VaultDir, "local vault directory")
	fs.StringVar(&cfg.RemoteEndpointURL, "e", cfg.RemoteEndpointURL, "remote vault GraphQL endpoint URL")
	fs.StringVar(&cfg.AuthTokenURL, "a", cfg.AuthTokenURL, "auth token endpoint URL")
	timeoutSeconds := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*timeoutSeconds) * time.Second
}
